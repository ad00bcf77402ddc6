// Package pivoting monta a matriz setor × mês consumida pela tabela de calor
package pivoting

import (
	"math"
	"sort"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/kpi"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

// Builder constrói a tabela dinâmica de setores por mês
type Builder interface {
	Build(records []*domain.SaleRecord, ref domain.ReferencePeriod) *domain.PivotTable
}

type Service struct {
	calculator kpi.Calculator
}

func NewService(calculator kpi.Calculator) Builder {
	return &Service{calculator: calculator}
}

// Build calcula, por setor presente no subconjunto, as métricas de cada mês
// presente e a média da linha sobre os meses fechados do período de
// referência (soma/janela para todas as métricas). Linhas em ordem
// decrescente de receita média; totais de coluna somam métricas aditivas e
// tiram a média das métricas de razão sobre as linhas exibidas.
func (s *Service) Build(records []*domain.SaleRecord, ref domain.ReferencePeriod) *domain.PivotTable {
	table := &domain.PivotTable{
		ClosedMonths: ref.ClosedMonths,
		ColumnTotals: map[string]domain.KPIStats{},
	}

	bySectorMonth := map[string]map[string][]*domain.SaleRecord{}
	monthSet := map[string]struct{}{}

	for _, record := range records {
		if record.Sector == "" {
			continue
		}

		month := record.Month()
		monthSet[month] = struct{}{}

		if bySectorMonth[record.Sector] == nil {
			bySectorMonth[record.Sector] = map[string][]*domain.SaleRecord{}
		}
		bySectorMonth[record.Sector][month] = append(bySectorMonth[record.Sector][month], record)
	}

	for month := range monthSet {
		table.Months = append(table.Months, month)
	}
	sort.Strings(table.Months)

	for sector, byMonth := range bySectorMonth {
		row := &domain.PivotRow{
			Sector: sector,
			Months: map[string]domain.KPIStats{},
		}

		for month, group := range byMonth {
			row.Months[month] = *s.calculator.Compute(group)
		}

		row.Average = rowAverage(row.Months, ref.ClosedMonths)
		table.Rows = append(table.Rows, row)
	}

	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].Average.TotalRevenue > table.Rows[j].Average.TotalRevenue
	})

	for _, month := range table.Months {
		column := make([]domain.KPIStats, 0, len(table.Rows))
		for _, row := range table.Rows {
			column = append(column, row.Months[month])
		}
		table.ColumnTotals[month] = combine(column)
	}

	averages := make([]domain.KPIStats, 0, len(table.Rows))
	for _, row := range table.Rows {
		averages = append(averages, row.Average)
	}
	table.GrandTotal = combine(averages)

	return table
}

// rowAverage é a média aritmética simples das métricas da linha sobre
// exatamente os meses fechados, ausências contando como zero. Não é um
// recálculo ponderado: cada métrica é somada e dividida pela janela.
func rowAverage(byMonth map[string]domain.KPIStats, closedMonths []string) domain.KPIStats {
	if len(closedMonths) == 0 {
		return domain.KPIStats{}
	}

	var sum domain.KPIStats
	for _, month := range closedMonths {
		add(&sum, byMonth[month])
	}

	window := float64(len(closedMonths))
	return domain.KPIStats{
		TotalRevenue:    utils.RoundWithTwoDecimalPlace(sum.TotalRevenue / window),
		Positivacao:     roundToInt(float64(sum.Positivacao) / window),
		TotalOrders:     roundToInt(float64(sum.TotalOrders) / window),
		AverageTicket:   utils.RoundWithTwoDecimalPlace(sum.AverageTicket / window),
		SKUPerPDV:       utils.RoundWithTwoDecimalPlace(sum.SKUPerPDV / window),
		AvgInstallments: utils.RoundWithTwoDecimalPlace(sum.AvgInstallments / window),
		AvgTerm:         utils.RoundWithTwoDecimalPlace(sum.AvgTerm / window),
	}
}

// combine agrega uma coluna de métricas das linhas visíveis: aditivas
// (receita, positivação, pedidos) somam; métricas de razão (ticket, SKU×PDV,
// parcelas, prazo) são a média aritmética sobre as linhas
func combine(column []domain.KPIStats) domain.KPIStats {
	var total domain.KPIStats
	for _, stats := range column {
		add(&total, stats)
	}

	if rows := float64(len(column)); rows > 0 {
		total.AverageTicket = utils.RoundWithTwoDecimalPlace(total.AverageTicket / rows)
		total.SKUPerPDV = utils.RoundWithTwoDecimalPlace(total.SKUPerPDV / rows)
		total.AvgInstallments = utils.RoundWithTwoDecimalPlace(total.AvgInstallments / rows)
		total.AvgTerm = utils.RoundWithTwoDecimalPlace(total.AvgTerm / rows)
	}

	return total
}

func add(dst *domain.KPIStats, src domain.KPIStats) {
	dst.TotalRevenue += src.TotalRevenue
	dst.Positivacao += src.Positivacao
	dst.TotalOrders += src.TotalOrders
	dst.AverageTicket += src.AverageTicket
	dst.SKUPerPDV += src.SKUPerPDV
	dst.AvgInstallments += src.AvgInstallments
	dst.AvgTerm += src.AvgTerm
}

func roundToInt(value float64) int {
	return int(math.Round(value))
}
