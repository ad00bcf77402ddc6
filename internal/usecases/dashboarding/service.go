// Package dashboarding orquestra o motor de agregação: mantém o snapshot de
// registros em memória e expõe um método por painel do dashboard. Cada
// chamada recalcula tudo do zero sobre o subconjunto filtrado; não há cache
// de métricas.
package dashboarding

import (
	"sync"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/aggregating"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/filtering"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/geo"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/kpi"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/pivoting"
)

// Dashboarder é a fachada de leitura do painel
type Dashboarder interface {
	Options(state *domain.FilterState) *domain.FilterOptions
	Summary(state *domain.FilterState) *domain.KPIStats
	Entities(state *domain.FilterState, dimension string) ([]*domain.EntityStats, error)
	Suppliers(state *domain.FilterState) []*domain.SupplierStats
	Products(state *domain.FilterState) []*domain.ProductStats
	Pivot(state *domain.FilterState) *domain.PivotTable
	Map(state *domain.FilterState) []*domain.GeoStats
	ReferencePeriod() domain.ReferencePeriod

	ReplaceRecords(records []*domain.SaleRecord)
	RecordCount() int
}

type Service struct {
	filterer   filtering.Filterer
	calculator kpi.Calculator
	aggregator aggregating.Aggregator
	pivoter    pivoting.Builder
	resolver   geo.Resolver

	// mês de referência fixado por configuração; vazio deriva do mês mais
	// recente presente nos dados
	referenceMonth string
	window         int

	mu      sync.RWMutex
	records []*domain.SaleRecord
}

func NewService(
	cfg *config.Config,
	filterer filtering.Filterer,
	calculator kpi.Calculator,
	aggregator aggregating.Aggregator,
	pivoter pivoting.Builder,
	resolver geo.Resolver,
) Dashboarder {
	return &Service{
		filterer:       filterer,
		calculator:     calculator,
		aggregator:     aggregator,
		pivoter:        pivoter,
		resolver:       resolver,
		referenceMonth: cfg.Report.ReferenceMonth,
		window:         cfg.Report.ComparisonWindowMonths,
	}
}

// ReplaceRecords troca o snapshot inteiro por um novo, nunca mutando o
// anterior; leitores em andamento seguem enxergando o snapshot antigo
func (s *Service) ReplaceRecords(records []*domain.SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

func (s *Service) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Service) Options(state *domain.FilterState) *domain.FilterOptions {
	return s.filterer.Options(s.snapshot(), state)
}

func (s *Service) Summary(state *domain.FilterState) *domain.KPIStats {
	return s.calculator.Compute(s.filtered(state))
}

func (s *Service) Entities(state *domain.FilterState, dimension string) ([]*domain.EntityStats, error) {
	return s.aggregator.Entities(s.filtered(state), dimension, s.ReferencePeriod())
}

func (s *Service) Suppliers(state *domain.FilterState) []*domain.SupplierStats {
	return s.aggregator.Suppliers(s.filtered(state), s.ReferencePeriod())
}

func (s *Service) Products(state *domain.FilterState) []*domain.ProductStats {
	return s.aggregator.Products(s.filtered(state), s.ReferencePeriod())
}

func (s *Service) Pivot(state *domain.FilterState) *domain.PivotTable {
	return s.pivoter.Build(s.filtered(state), s.ReferencePeriod())
}

func (s *Service) Map(state *domain.FilterState) []*domain.GeoStats {
	return s.resolver.Aggregate(s.filtered(state))
}

// ReferencePeriod monta o recorte temporal corrente: o mês configurado, ou o
// mês mais recente presente no snapshot quando não configurado
func (s *Service) ReferencePeriod() domain.ReferencePeriod {
	month := s.referenceMonth
	if month == "" {
		month = s.latestMonth()
	}

	return domain.NewReferencePeriodFromMonth(month, s.window)
}

func (s *Service) latestMonth() string {
	var latest string
	for _, record := range s.snapshot() {
		if month := record.Month(); month > latest {
			latest = month
		}
	}
	return latest
}

func (s *Service) filtered(state *domain.FilterState) []*domain.SaleRecord {
	return s.filterer.Filter(s.snapshot(), state)
}

func (s *Service) snapshot() []*domain.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
