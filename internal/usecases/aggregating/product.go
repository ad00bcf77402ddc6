package aggregating

import (
	"sort"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// Products agrupa por código de produto, restrito ao mês de referência.
// Receita e quantidade líquida carregam sinal: a magnitude absoluta da
// quantidade é re-sinalizada pela classe de operação (devolução subtrai).
// Clientes e pedidos distintos contam apenas linhas de venda.
func (s *Service) Products(records []*domain.SaleRecord, ref domain.ReferencePeriod) []*domain.ProductStats {
	type productAccumulator struct {
		stats   *domain.ProductStats
		clients map[string]struct{}
		orders  map[string]struct{}
	}

	accumulators := map[string]*productAccumulator{}

	for _, record := range records {
		if record.ProductCode == "" || record.Month() != ref.Current {
			continue
		}

		acc := accumulators[record.ProductCode]
		if acc == nil {
			acc = &productAccumulator{
				stats: &domain.ProductStats{
					ProductCode: record.ProductCode,
					Description: record.ProductDescription,
				},
				clients: map[string]struct{}{},
				orders:  map[string]struct{}{},
			}
			accumulators[record.ProductCode] = acc
		}

		if acc.stats.Description == "" {
			acc.stats.Description = record.ProductDescription
		}

		acc.stats.Revenue += record.Amount

		quantity := record.Quantity
		if quantity < 0 {
			quantity = -quantity
		}

		if record.Operation == domain.OperationReturn {
			acc.stats.NetQuantity -= quantity
			continue
		}

		acc.stats.NetQuantity += quantity
		acc.clients[record.ClientID] = struct{}{}
		acc.orders[record.OrderID] = struct{}{}
	}

	products := make([]*domain.ProductStats, 0, len(accumulators))
	for _, acc := range accumulators {
		acc.stats.ClientCount = len(acc.clients)
		acc.stats.OrderCount = len(acc.orders)
		products = append(products, acc.stats)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Revenue > products[j].Revenue
	})

	return products
}
