// Package kpi calcula a bateria de sete métricas do painel sobre um
// subconjunto arbitrário de registros. Função pura: sem estado externo, sem
// erro; entradas degeneradas produzem métricas zeradas.
package kpi

import (
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

// Calculator computa a tupla KPIStats de um subconjunto de registros
type Calculator interface {
	Compute(records []*domain.SaleRecord) *domain.KPIStats
}

type Service struct{}

func NewService() Calculator {
	return &Service{}
}

// Compute calcula as sete métricas em uma única passada de agrupamento:
//   - receita total: soma do Amount (devoluções já negativas)
//   - positivação: clientes com saldo líquido estritamente positivo
//   - pedidos: distintos de venda − distintos de devolução, piso em zero
//   - ticket médio: receita / pedidos
//   - SKU×PDV: SKUs líquidos por cliente positivado (piso zero por cliente)
//   - parcela média e prazo médio: ponderados pela receita das linhas de venda
func (s *Service) Compute(records []*domain.SaleRecord) *domain.KPIStats {
	stats := &domain.KPIStats{}
	if len(records) == 0 {
		return stats
	}

	clientNet := map[string]float64{}
	saleOrders := map[string]struct{}{}
	returnOrders := map[string]struct{}{}
	clientSaleSKUs := map[string]map[string]struct{}{}
	clientReturnSKUs := map[string]map[string]struct{}{}

	for _, record := range records {
		stats.TotalRevenue += record.Amount
		clientNet[record.ClientID] += record.Amount

		if record.Operation == domain.OperationReturn {
			returnOrders[record.OrderID] = struct{}{}
			addSKU(clientReturnSKUs, record.ClientID, record.ProductCode)
			continue
		}

		saleOrders[record.OrderID] = struct{}{}
		addSKU(clientSaleSKUs, record.ClientID, record.ProductCode)
	}

	for _, net := range clientNet {
		if net > 0 {
			stats.Positivacao++
		}
	}

	if orders := len(saleOrders) - len(returnOrders); orders > 0 {
		stats.TotalOrders = orders
	}

	if stats.TotalOrders > 0 {
		stats.AverageTicket = utils.RoundWithTwoDecimalPlace(stats.TotalRevenue / float64(stats.TotalOrders))
	}

	if stats.Positivacao > 0 {
		var skuSum int
		for clientID, net := range clientNet {
			if net <= 0 {
				continue
			}
			if skus := len(clientSaleSKUs[clientID]) - len(clientReturnSKUs[clientID]); skus > 0 {
				skuSum += skus
			}
		}
		stats.SKUPerPDV = utils.RoundWithTwoDecimalPlace(float64(skuSum) / float64(stats.Positivacao))
	}

	stats.AvgInstallments = s.weightedInstallments(records)
	stats.AvgTerm = s.weightedTerm(records)

	return stats
}

// weightedInstallments pondera o número de parcelas pela receita das linhas
// de venda; linhas sem parcela interpretável ficam fora do numerador e do
// denominador
func (s *Service) weightedInstallments(records []*domain.SaleRecord) float64 {
	var weightedSum, totalWeight float64

	for _, record := range records {
		if record.Operation != domain.OperationSale {
			continue
		}

		installments := installmentCount(record.PaymentTerms)
		if installments == 0 {
			continue
		}

		weightedSum += float64(installments) * record.Amount
		totalWeight += record.Amount
	}

	if totalWeight == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(weightedSum / totalWeight)
}

// weightedTerm pondera o prazo em dias pela receita das linhas de venda. O
// prazo é calculado uma única vez por pedido (todas as linhas de um pedido
// compartilham a mesma condição) por uma tabela de memoização por OrderID.
func (s *Service) weightedTerm(records []*domain.SaleRecord) float64 {
	type orderTerm struct {
		days  float64
		valid bool
	}

	termByOrder := map[string]orderTerm{}
	var weightedSum, totalWeight float64

	for _, record := range records {
		if record.Operation != domain.OperationSale {
			continue
		}

		term, seen := termByOrder[record.OrderID]
		if !seen {
			days, valid := termDays(record.IssueDate, record.PaymentTerms)
			term = orderTerm{days: days, valid: valid}
			termByOrder[record.OrderID] = term
		}

		if !term.valid {
			continue
		}

		weightedSum += term.days * record.Amount
		totalWeight += record.Amount
	}

	if totalWeight == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(weightedSum / totalWeight)
}

func addSKU(skusByClient map[string]map[string]struct{}, clientID, productCode string) {
	if productCode == "" {
		return
	}

	if skusByClient[clientID] == nil {
		skusByClient[clientID] = map[string]struct{}{}
	}

	skusByClient[clientID][productCode] = struct{}{}
}
