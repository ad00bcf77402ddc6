package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

func issuedAt(day string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, day)
	return parsed
}

func TestService_Compute(t *testing.T) {
	service := NewService()

	tests := []struct {
		name     string
		records  []*domain.SaleRecord
		validate func(t *testing.T, stats *domain.KPIStats)
	}{
		{
			name:    "Subconjunto vazio - todas as métricas zeradas",
			records: nil,
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, &domain.KPIStats{}, stats)
			},
		},
		{
			name: "Venda e devolução se anulam - receita e positivação zeradas, parcelas e prazo só da venda",
			records: []*domain.SaleRecord{
				{
					ClientID:     "CLIENTE-A",
					OrderID:      "PED-1",
					ProductCode:  "SKU-1",
					Amount:       100,
					Operation:    domain.OperationSale,
					PaymentTerms: "30-60-90",
					IssueDate:    issuedAt("2024-05-10"),
				},
				{
					ClientID:    "CLIENTE-A",
					OrderID:     "PED-1",
					ProductCode: "SKU-1",
					Amount:      -100,
					Operation:   domain.OperationReturn,
					IssueDate:   issuedAt("2024-05-12"),
				},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, 0.0, stats.TotalRevenue)
				assert.Equal(t, 0, stats.Positivacao)
				// mesmo pedido nas duas pontas: 1 venda − 1 devolução
				assert.Equal(t, 0, stats.TotalOrders)
				assert.Equal(t, 0.0, stats.AverageTicket)
				assert.Equal(t, 0.0, stats.SKUPerPDV)
				assert.Equal(t, 3.0, stats.AvgInstallments)
				assert.Equal(t, 60.0, stats.AvgTerm)
			},
		},
		{
			name: "Cliente com saldo negativo não positiva e não contribui com SKUs",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", ProductCode: "SKU-1", Amount: 200, Operation: domain.OperationSale, IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-A", OrderID: "PED-1", ProductCode: "SKU-2", Amount: 150, Operation: domain.OperationSale, IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-A", OrderID: "PED-2", ProductCode: "SKU-3", Amount: 150, Operation: domain.OperationSale, IssueDate: issuedAt("2024-05-03")},
				{ClientID: "CLIENTE-B", OrderID: "PED-3", ProductCode: "SKU-9", Amount: 30, Operation: domain.OperationSale, IssueDate: issuedAt("2024-05-04")},
				{ClientID: "CLIENTE-B", OrderID: "PED-4", ProductCode: "SKU-9", Amount: -50, Operation: domain.OperationReturn, IssueDate: issuedAt("2024-05-06")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, 480.0, stats.TotalRevenue)
				assert.Equal(t, 1, stats.Positivacao)
				// 3 pedidos de venda − 1 de devolução
				assert.Equal(t, 2, stats.TotalOrders)
				assert.Equal(t, 240.0, stats.AverageTicket)
				// só o cliente positivado conta: 3 SKUs distintos / 1 cliente
				assert.Equal(t, 3.0, stats.SKUPerPDV)
			},
		},
		{
			name: "Mais devoluções que vendas - pedidos com piso em zero",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", ProductCode: "SKU-1", Amount: 80, Operation: domain.OperationSale, IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-A", OrderID: "PED-2", ProductCode: "SKU-1", Amount: -40, Operation: domain.OperationReturn, IssueDate: issuedAt("2024-05-02")},
				{ClientID: "CLIENTE-A", OrderID: "PED-3", ProductCode: "SKU-2", Amount: -10, Operation: domain.OperationReturn, IssueDate: issuedAt("2024-05-03")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, 0, stats.TotalOrders)
				assert.Equal(t, 0.0, stats.AverageTicket)
				// saldo +30: cliente positivado; SKUs líquidos 1 venda − 2 devolução, piso zero
				assert.Equal(t, 1, stats.Positivacao)
				assert.Equal(t, 0.0, stats.SKUPerPDV)
			},
		},
		{
			name: "Parcela média ponderada pela receita",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", Amount: 300, Operation: domain.OperationSale, PaymentTerms: "30-60-90", IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-B", OrderID: "PED-2", Amount: 100, Operation: domain.OperationSale, PaymentTerms: "30", IssueDate: issuedAt("2024-05-01")},
				// sem condição interpretável: fora do numerador e do denominador
				{ClientID: "CLIENTE-C", OrderID: "PED-3", Amount: 999, Operation: domain.OperationSale, PaymentTerms: "", IssueDate: issuedAt("2024-05-01")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				// (3×300 + 1×100) / 400 = 2.5
				assert.Equal(t, 2.5, stats.AvgInstallments)
			},
		},
		{
			name: "Prazo médio com datas de vencimento explícitas",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", Amount: 100, Operation: domain.OperationSale, PaymentTerms: "10/02/2024", IssueDate: issuedAt("2024-01-10")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, 31.0, stats.AvgTerm)
			},
		},
		{
			name: "Prazo médio memoizado por pedido - linhas do mesmo pedido compartilham o cálculo",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", Amount: 100, Operation: domain.OperationSale, PaymentTerms: "30-60", IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-A", OrderID: "PED-1", Amount: 100, Operation: domain.OperationSale, PaymentTerms: "30-60", IssueDate: issuedAt("2024-05-01")},
				{ClientID: "CLIENTE-B", OrderID: "PED-2", Amount: 200, Operation: domain.OperationSale, PaymentTerms: "90", IssueDate: issuedAt("2024-05-01")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				// (45×200 + 90×200) / 400 = 67.5
				assert.Equal(t, 67.5, stats.AvgTerm)
			},
		},
		{
			name: "Vencimento anterior à emissão - pedido fora da ponderação de prazo",
			records: []*domain.SaleRecord{
				{ClientID: "CLIENTE-A", OrderID: "PED-1", Amount: 100, Operation: domain.OperationSale, PaymentTerms: "01/01/2024", IssueDate: issuedAt("2024-03-01")},
			},
			validate: func(t *testing.T, stats *domain.KPIStats) {
				assert.Equal(t, 0.0, stats.AvgTerm)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, service.Compute(tt.records))
		})
	}
}
