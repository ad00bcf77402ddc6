package normalizing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"Milhar com ponto e decimal com vírgula", "1.234,56", 1234.56},
		{"Com marcador de moeda", "R$ 1.234,56", 1234.56},
		{"Só vírgula decimal", "150,5", 150.5},
		{"Só ponto decimal", "150.5", 150.5},
		{"Inteiro puro", "980", 980},
		{"Negativo com sinal na frente", "-100,00", -100},
		{"Negativo com sinal depois da moeda", "R$ -2.500,00", -2500},
		{"Vazio vira zero", "", 0},
		{"Texto não numérico vira zero", "A COMBINAR", 0},
		{"Espaços nas pontas", "  45,90  ", 45.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseAmount(tt.raw), 0.0001)
		})
	}
}

func TestService_Normalize(t *testing.T) {
	service := NewService()

	t.Run("Mapeia sinônimos de cabeçalho para os campos canônicos", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{{
			"Data Emissão":   "15/03/2024",
			"Regional":       "SUL",
			"Divisão":        "ALIMENTAR",
			"Setor":          "SETOR 10",
			"Vendedor":       "JOÃO",
			"Canal":          "atacado",
			"Fornecedor":     "ACME",
			"CNPJ":           "11222333000144",
			"Razão Social":   "MERCADO CENTRAL",
			"Cód. Produto":   "P-001",
			"Produto":        "ARROZ 5KG",
			"Vlr. Total":     "R$ 1.234,56",
			"Qtde":           "10",
			"Nº Pedido":      "PED-1",
			"Tipo":           "NF",
			"Cond. Pagto":    "30/60",
			"Rede":           "REDE A",
			"Cidade":         "PATO BRANCO",
			"UF":             "pr",
		}})

		if assert.Len(t, records, 1) {
			record := records[0]
			assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), record.IssueDate)
			assert.Equal(t, "SUL", record.Region)
			assert.Equal(t, "ALIMENTAR", record.Division)
			assert.Equal(t, "SETOR 10", record.Sector)
			assert.Equal(t, "JOÃO", record.Representative)
			assert.Equal(t, domain.ChannelAtacado, record.Channel)
			assert.Equal(t, "ACME", record.Supplier)
			assert.Equal(t, "11222333000144", record.ClientID)
			assert.Equal(t, "P-001", record.ProductCode)
			assert.InDelta(t, 1234.56, record.Amount, 0.0001)
			assert.Equal(t, 10, record.Quantity)
			assert.Equal(t, "PED-1", record.OrderID)
			assert.Equal(t, domain.OperationSale, record.Operation)
			assert.Equal(t, "30/60", record.PaymentTerms)
			assert.Equal(t, "PR", record.State)
			assert.NotEmpty(t, record.ID)
		}
	})

	t.Run("Aceita data ISO", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{{"Data": "2024-03-15", "Valor": "10"}})

		if assert.Len(t, records, 1) {
			assert.Equal(t, "2024-03", records[0].Month())
		}
	})

	t.Run("Linha sem data interpretável é descartada", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{
			{"Data": "15/03/2024", "Valor": "10"},
			{"Data": "ontem", "Valor": "20"},
			{"Valor": "30"},
		})

		assert.Len(t, records, 1)
	})

	t.Run("Tipo DV marca devolução, qualquer outro valor marca venda", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{
			{"Data": "15/03/2024", "Tipo": "DV"},
			{"Data": "15/03/2024", "Tipo": "NF"},
			{"Data": "15/03/2024"},
		})

		assert.Equal(t, domain.OperationReturn, records[0].Operation)
		assert.Equal(t, domain.OperationSale, records[1].Operation)
		assert.Equal(t, domain.OperationSale, records[2].Operation)
	})

	t.Run("Canal desconhecido ou vazio cai no canal padrão", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{
			{"Data": "15/03/2024", "Canal": "PORTA A PORTA"},
			{"Data": "15/03/2024"},
		})

		assert.Equal(t, domain.ChannelFallback, records[0].Channel)
		assert.Equal(t, domain.ChannelFallback, records[1].Channel)
	})

	t.Run("Chaves em branco ganham identificadores sintéticos distintos", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{
			{"Data": "15/03/2024"},
			{"Data": "16/03/2024"},
		})

		if assert.Len(t, records, 2) {
			assert.Contains(t, records[0].ClientID, "SEM-CNPJ-")
			assert.Contains(t, records[0].OrderID, "SEM-PEDIDO-")
			assert.NotEqual(t, records[0].ClientID, records[1].ClientID)
			assert.NotEqual(t, records[0].OrderID, records[1].OrderID)
		}
	})

	t.Run("Valor malformado degrada para zero sem descartar a linha", func(t *testing.T) {
		records := service.Normalize([]domain.RawRow{{"Data": "15/03/2024", "Valor": "??", "Qtde": "x"}})

		if assert.Len(t, records, 1) {
			assert.Zero(t, records[0].Amount)
			assert.Zero(t, records[0].Quantity)
		}
	})
}
