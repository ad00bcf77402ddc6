// Package aggregating agrupa registros por entidade (cliente, rede,
// representante, fornecedor) e por produto, comparando o mês de referência
// com a média dos meses fechados
package aggregating

import (
	"fmt"
	"sort"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/kpi"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

// Aggregator produz as projeções por entidade e por produto
type Aggregator interface {
	Entities(records []*domain.SaleRecord, dimension string, ref domain.ReferencePeriod) ([]*domain.EntityStats, error)
	Suppliers(records []*domain.SaleRecord, ref domain.ReferencePeriod) []*domain.SupplierStats
	Products(records []*domain.SaleRecord, ref domain.ReferencePeriod) []*domain.ProductStats
}

type Service struct {
	calculator kpi.Calculator
}

func NewService(calculator kpi.Calculator) Aggregator {
	return &Service{calculator: calculator}
}

type keyExtractor struct {
	key  func(*domain.SaleRecord) string
	name func(*domain.SaleRecord) string
}

var extractors = map[string]keyExtractor{
	domain.DimensionClient: {
		key:  func(r *domain.SaleRecord) string { return r.ClientID },
		name: func(r *domain.SaleRecord) string { return r.ClientName },
	},
	domain.DimensionNetwork: {
		key:  func(r *domain.SaleRecord) string { return r.Network },
		name: func(r *domain.SaleRecord) string { return r.Network },
	},
	domain.DimensionRepresentative: {
		key:  func(r *domain.SaleRecord) string { return r.Representative },
		name: func(r *domain.SaleRecord) string { return r.Representative },
	},
	domain.DimensionSupplier: {
		key:  func(r *domain.SaleRecord) string { return r.Supplier },
		name: func(r *domain.SaleRecord) string { return r.Supplier },
	},
}

// Entities agrupa pela dimensão pedida e calcula, por grupo, as métricas do
// mês de referência contra a média de receita dos meses fechados
func (s *Service) Entities(records []*domain.SaleRecord, dimension string, ref domain.ReferencePeriod) ([]*domain.EntityStats, error) {
	extractor, known := extractors[dimension]
	if !known {
		return nil, fmt.Errorf("dimensão de agregação desconhecida: %q", dimension)
	}

	return s.aggregate(records, extractor, ref), nil
}

// Suppliers é a variante por fornecedor, acrescentando a contagem de SKUs
// distintos das linhas de venda do mês de referência
func (s *Service) Suppliers(records []*domain.SaleRecord, ref domain.ReferencePeriod) []*domain.SupplierStats {
	entities := s.aggregate(records, extractors[domain.DimensionSupplier], ref)

	skusBySupplier := map[string]map[string]struct{}{}
	for _, record := range records {
		if record.Supplier == "" || record.ProductCode == "" {
			continue
		}
		if record.Operation != domain.OperationSale || record.Month() != ref.Current {
			continue
		}
		if skusBySupplier[record.Supplier] == nil {
			skusBySupplier[record.Supplier] = map[string]struct{}{}
		}
		skusBySupplier[record.Supplier][record.ProductCode] = struct{}{}
	}

	suppliers := make([]*domain.SupplierStats, 0, len(entities))
	for _, entity := range entities {
		suppliers = append(suppliers, &domain.SupplierStats{
			EntityStats: *entity,
			SKUCount:    len(skusBySupplier[entity.Key]),
		})
	}

	return suppliers
}

// aggregate é o agrupamento genérico por chave. Registros com chave vazia
// ficam fora do agrupamento por completo.
func (s *Service) aggregate(records []*domain.SaleRecord, extractor keyExtractor, ref domain.ReferencePeriod) []*domain.EntityStats {
	groups := map[string][]*domain.SaleRecord{}
	names := map[string]string{}

	for _, record := range records {
		key := extractor.key(record)
		if key == "" {
			continue
		}

		groups[key] = append(groups[key], record)
		if names[key] == "" {
			names[key] = extractor.name(record)
		}
	}

	entities := make([]*domain.EntityStats, 0, len(groups))
	for key, group := range groups {
		current := make([]*domain.SaleRecord, 0, len(group))
		revenueByClosedMonth := map[string]float64{}

		for _, record := range group {
			month := record.Month()
			if month == ref.Current {
				current = append(current, record)
			} else if ref.IsClosed(month) {
				revenueByClosedMonth[month] += record.Amount
			}
		}

		stats := s.calculator.Compute(current)

		var baseline float64
		if len(ref.ClosedMonths) > 0 {
			for _, month := range ref.ClosedMonths {
				baseline += revenueByClosedMonth[month]
			}
			baseline /= float64(len(ref.ClosedMonths))
		}

		entities = append(entities, &domain.EntityStats{
			Key:               key,
			Name:              names[key],
			Current:           *stats,
			HistoricalRevenue: utils.RoundWithTwoDecimalPlace(baseline),
			TrendPct:          trend(stats.TotalRevenue, baseline),
		})
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Current.TotalRevenue > entities[j].Current.TotalRevenue
	})

	return entities
}

// trend calcula a variação percentual do corrente sobre a linha de base, com
// as convenções de base zerada: 100% quando há receita corrente, 0% quando
// não há
func trend(current, baseline float64) float64 {
	if baseline == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return utils.RoundWithTwoDecimalPlace((current - baseline) / baseline * 100)
}
