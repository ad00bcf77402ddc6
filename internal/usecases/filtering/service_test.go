package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

func record(month, division, region, supplier string) *domain.SaleRecord {
	issueDate, _ := time.Parse("2006-01", month)
	return &domain.SaleRecord{
		IssueDate: issueDate,
		Division:  division,
		Region:    region,
		Supplier:  supplier,
	}
}

func TestService_Filter(t *testing.T) {
	service := NewService()

	records := []*domain.SaleRecord{
		record("2024-03", "ALIMENTAR", "SUL", "ACME"),
		record("2024-04", "ALIMENTAR", "SUDESTE", "ACME"),
		record("2024-05", "HIGIENE", "SUL", "BETA"),
		record("2024-06", "HIGIENE", "SUDESTE", "BETA"),
	}

	tests := []struct {
		name     string
		state    *domain.FilterState
		expected int
	}{
		{"Estado nulo não restringe", nil, 4},
		{"Estado vazio não restringe", &domain.FilterState{}, 4},
		{"Sentinela all não restringe", &domain.FilterState{Divisions: []string{domain.FilterAll}}, 4},
		{"Uma dimensão", &domain.FilterState{Divisions: []string{"HIGIENE"}}, 2},
		{"Múltiplos valores na mesma dimensão", &domain.FilterState{Regions: []string{"SUL", "SUDESTE"}}, 4},
		{"Dimensões combinam por E", &domain.FilterState{Divisions: []string{"HIGIENE"}, Regions: []string{"SUL"}}, 1},
		{"Intervalo de meses fechado nas duas pontas", &domain.FilterState{StartMonth: "2024-04", EndMonth: "2024-05"}, 2},
		{"Só início do intervalo", &domain.FilterState{StartMonth: "2024-05"}, 2},
		{"Só fim do intervalo", &domain.FilterState{EndMonth: "2024-03"}, 1},
		{"Intervalo e dimensão juntos", &domain.FilterState{StartMonth: "2024-04", Suppliers: []string{"BETA"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, service.Filter(records, tt.state), tt.expected)
		})
	}
}

func TestService_Filter_Idempotente(t *testing.T) {
	service := NewService()

	records := []*domain.SaleRecord{
		record("2024-03", "ALIMENTAR", "SUL", "ACME"),
		record("2024-04", "HIGIENE", "SUDESTE", "BETA"),
	}

	state := &domain.FilterState{Divisions: []string{"HIGIENE"}, StartMonth: "2024-01"}

	once := service.Filter(records, state)
	twice := service.Filter(once, state)

	assert.Equal(t, once, twice)
}

func TestService_Options(t *testing.T) {
	service := NewService()

	records := []*domain.SaleRecord{
		record("2024-03", "ALIMENTAR", "SUL", "ACME"),
		record("2024-04", "ALIMENTAR", "SUDESTE", "ACME"),
		record("2024-05", "HIGIENE", "SUL", "BETA"),
	}

	t.Run("Sem filtro ativo, todas as opções em ordem lexical", func(t *testing.T) {
		options := service.Options(records, &domain.FilterState{})

		assert.Equal(t, []string{"ALIMENTAR", "HIGIENE"}, options.Divisions)
		assert.Equal(t, []string{"SUDESTE", "SUL"}, options.Regions)
		assert.Equal(t, []string{"ACME", "BETA"}, options.Suppliers)
		assert.Equal(t, []string{"2024-03", "2024-04", "2024-05"}, options.Months)
	})

	t.Run("O filtro da própria dimensão é ignorado no cálculo dela", func(t *testing.T) {
		options := service.Options(records, &domain.FilterState{Divisions: []string{"HIGIENE"}})

		// a dimensão filtrada continua mostrando todos os valores alcançáveis
		assert.Equal(t, []string{"ALIMENTAR", "HIGIENE"}, options.Divisions)
		// as demais dimensões respeitam o filtro de divisão
		assert.Equal(t, []string{"SUL"}, options.Regions)
		assert.Equal(t, []string{"BETA"}, options.Suppliers)
	})

	t.Run("Intervalo de meses restringe todas as dimensões", func(t *testing.T) {
		options := service.Options(records, &domain.FilterState{StartMonth: "2024-04", EndMonth: "2024-05"})

		assert.Equal(t, []string{"ALIMENTAR", "HIGIENE"}, options.Divisions)
		assert.Equal(t, []string{"SUDESTE", "SUL"}, options.Regions)
	})

	t.Run("Toda opção oferecida mantém o conjunto não vazio quando selecionada", func(t *testing.T) {
		state := &domain.FilterState{Regions: []string{"SUL"}}
		options := service.Options(records, state)

		for _, division := range options.Divisions {
			narrowed := *state
			narrowed.Divisions = []string{division}
			assert.NotEmpty(t, service.Filter(records, &narrowed), "divisão %s", division)
		}
	})

	t.Run("Valores vazios não viram opção", func(t *testing.T) {
		withBlank := append([]*domain.SaleRecord{record("2024-03", "", "SUL", "ACME")}, records...)
		options := service.Options(withBlank, &domain.FilterState{})

		assert.Equal(t, []string{"ALIMENTAR", "HIGIENE"}, options.Divisions)
	})
}
