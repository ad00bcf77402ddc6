// Package normalizing converte linhas brutas heterogêneas da fonte de dados
// em registros de venda canônicos
package normalizing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

// Normalizer converte linhas brutas em registros canônicos
type Normalizer interface {
	Normalize(rows []domain.RawRow) []*domain.SaleRecord
}

type Service struct{}

func NewService() Normalizer {
	return &Service{}
}

// Sinônimos de cabeçalho conhecidos por campo semântico. A comparação ignora
// caixa e espaços nas pontas.
var headerSynonyms = map[string][]string{
	"date":           {"Data Emissão", "Emissão", "Data"},
	"region":         {"Regional", "Região"},
	"division":       {"Divisão", "Divisao"},
	"sector":         {"Setor"},
	"representative": {"Representante", "Vendedor"},
	"channel":        {"Canal", "Canal de Venda"},
	"supplier":       {"Fornecedor"},
	"client_id":      {"CNPJ", "CPF/CNPJ"},
	"client_name":    {"Razão Social", "Cliente"},
	"product_code":   {"Cód. Produto", "Código Produto", "Cod Produto"},
	"product_desc":   {"Descrição Produto", "Produto"},
	"amount":         {"Vlr. Total", "Valor Total", "Valor"},
	"quantity":       {"Qtde", "Quantidade"},
	"order_id":       {"Nº Pedido", "Pedido"},
	"operation":      {"Tipo", "Operação"},
	"payment_terms":  {"Cond. Pagto", "Condição de Pagamento", "Forma Pagamento"},
	"network":        {"Rede"},
	"city":           {"Cidade", "Município"},
	"state":          {"UF", "Estado"},
}

// Normalize converte as linhas brutas em registros canônicos. Linhas sem data
// de emissão interpretável são descartadas; os demais campos malformados
// degradam para zero/vazio sem propagar erro.
func (s *Service) Normalize(rows []domain.RawRow) []*domain.SaleRecord {
	records := make([]*domain.SaleRecord, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		issueDate, ok := parseDate(field(row, "date"))
		if !ok {
			dropped++
			continue
		}

		records = append(records, &domain.SaleRecord{
			ID:                 rowID(i),
			IssueDate:          issueDate,
			Region:             field(row, "region"),
			Division:           field(row, "division"),
			Sector:             field(row, "sector"),
			Representative:     field(row, "representative"),
			Channel:            parseChannel(field(row, "channel")),
			Supplier:           field(row, "supplier"),
			ClientID:           fallbackID(field(row, "client_id"), "SEM-CNPJ", i),
			ClientName:         field(row, "client_name"),
			ProductCode:        field(row, "product_code"),
			ProductDescription: field(row, "product_desc"),
			Amount:             ParseAmount(field(row, "amount")),
			Quantity:           parseQuantity(field(row, "quantity")),
			OrderID:            fallbackID(field(row, "order_id"), "SEM-PEDIDO", i),
			Operation:          parseOperation(field(row, "operation")),
			PaymentTerms:       field(row, "payment_terms"),
			Network:            field(row, "network"),
			City:               field(row, "city"),
			State:              strings.ToUpper(field(row, "state")),
		})
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped": dropped,
			"total":   len(rows),
		}).Warn("normalizer: linhas descartadas por data de emissão inválida")
	}

	return records
}

// field resolve o valor de um campo semântico percorrendo os sinônimos de
// cabeçalho
func field(row domain.RawRow, name string) string {
	for _, synonym := range headerSynonyms[name] {
		for label, value := range row {
			if strings.EqualFold(strings.TrimSpace(label), synonym) {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// ParseAmount interpreta um valor monetário em texto livre: remove o marcador
// de moeda, detecta sinal negativo em qualquer posição, trata ponto de milhar
// e vírgula decimal. Texto não interpretável vira 0.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	negative := strings.Contains(s, "-")
	s = strings.ReplaceAll(s, "R$", "")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// ponto é separador de milhar, vírgula é o decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	if negative {
		value = -value
	}

	return value
}

// parseDate aceita ISO (YYYY-MM-DD) e DD/MM/YYYY; qualquer outro formato
// invalida a linha
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		return parsed, true
	}

	if parsed, err := time.Parse("02/01/2006", raw); err == nil {
		return parsed, true
	}

	return time.Time{}, false
}

func parseQuantity(raw string) int {
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return quantity
}

func parseChannel(raw string) string {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, channel := range domain.KnownChannels {
		if normalized == channel {
			return channel
		}
	}
	return domain.ChannelFallback
}

func parseOperation(raw string) domain.OperationClass {
	if strings.TrimSpace(raw) == "DV" {
		return domain.OperationReturn
	}
	return domain.OperationSale
}

// fallbackID gera um identificador sintético por linha quando o campo vem em
// branco, para que linhas sem chave nunca sejam agrupadas juntas
func fallbackID(value, prefix string, rowIndex int) string {
	if value != "" {
		return value
	}

	id, err := utils.GenerateID()
	if err != nil {
		id = strconv.Itoa(rowIndex)
	}

	return fmt.Sprintf("%s-%s", prefix, id)
}

func rowID(rowIndex int) string {
	id, err := utils.GenerateID()
	if err != nil {
		return strconv.Itoa(rowIndex)
	}
	return id
}
