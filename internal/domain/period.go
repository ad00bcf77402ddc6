package domain

import "time"

// ReferencePeriod parametriza o recorte temporal das agregações: o mês
// corrente e a janela de meses fechados usada como linha de base histórica.
// Sempre fornecido pelo chamador; nenhum componente assume meses fixos.
type ReferencePeriod struct {
	// Current é o mês de referência no formato YYYY-MM
	Current string `json:"current"`

	// ClosedMonths são os meses fechados anteriores a Current, do mais
	// recente para o mais antigo
	ClosedMonths []string `json:"closed_months"`
}

// NewReferencePeriod monta o período de referência a partir de um mês corrente
// e do tamanho da janela de comparação
func NewReferencePeriod(current time.Time, window int) ReferencePeriod {
	firstOfMonth := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC)

	closed := make([]string, 0, window)
	for i := 1; i <= window; i++ {
		closed = append(closed, firstOfMonth.AddDate(0, -i, 0).Format("2006-01"))
	}

	return ReferencePeriod{
		Current:      firstOfMonth.Format("2006-01"),
		ClosedMonths: closed,
	}
}

// NewReferencePeriodFromMonth monta o período a partir de uma chave YYYY-MM.
// Meses inválidos degradam para um período vazio, que zera as agregações em
// vez de falhar.
func NewReferencePeriodFromMonth(month string, window int) ReferencePeriod {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return ReferencePeriod{}
	}
	return NewReferencePeriod(parsed, window)
}

// IsClosed informa se o mês pertence à janela de meses fechados
func (p ReferencePeriod) IsClosed(month string) bool {
	for _, m := range p.ClosedMonths {
		if m == month {
			return true
		}
	}
	return false
}
