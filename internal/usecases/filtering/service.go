// Package filtering aplica o filtro multidimensional do painel e deriva os
// conjuntos de opções em cascata por dimensão
package filtering

import (
	"sort"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// Filterer filtra registros e deriva opções válidas por dimensão
type Filterer interface {
	Filter(records []*domain.SaleRecord, state *domain.FilterState) []*domain.SaleRecord
	Options(records []*domain.SaleRecord, state *domain.FilterState) *domain.FilterOptions
}

type Service struct{}

func NewService() Filterer {
	return &Service{}
}

// dimension liga o conjunto de valores ativos de uma dimensão ao extrator do
// campo correspondente do registro
type dimension struct {
	active func(*domain.FilterState) []string
	value  func(*domain.SaleRecord) string
}

var dimensions = map[string]dimension{
	"division": {
		active: func(s *domain.FilterState) []string { return s.Divisions },
		value:  func(r *domain.SaleRecord) string { return r.Division },
	},
	"region": {
		active: func(s *domain.FilterState) []string { return s.Regions },
		value:  func(r *domain.SaleRecord) string { return r.Region },
	},
	"sector": {
		active: func(s *domain.FilterState) []string { return s.Sectors },
		value:  func(r *domain.SaleRecord) string { return r.Sector },
	},
	"representative": {
		active: func(s *domain.FilterState) []string { return s.Representatives },
		value:  func(r *domain.SaleRecord) string { return r.Representative },
	},
	"channel": {
		active: func(s *domain.FilterState) []string { return s.Channels },
		value:  func(r *domain.SaleRecord) string { return r.Channel },
	},
	"supplier": {
		active: func(s *domain.FilterState) []string { return s.Suppliers },
		value:  func(r *domain.SaleRecord) string { return r.Supplier },
	},
}

// Filter devolve os registros que passam em todos os predicados de dimensão e
// cujo mês de emissão está dentro do intervalo [StartMonth, EndMonth]. Sem
// efeitos colaterais; a fatia de entrada não é modificada.
func (s *Service) Filter(records []*domain.SaleRecord, state *domain.FilterState) []*domain.SaleRecord {
	if state == nil {
		return records
	}

	filtered := make([]*domain.SaleRecord, 0, len(records))
	for _, record := range records {
		if matches(record, state, "") {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// Options calcula, por dimensão, os valores distintos não vazios presentes na
// coleção depois de aplicar o intervalo de datas e os filtros de todas as
// outras dimensões. O filtro da própria dimensão é excluído de propósito,
// para que o usuário sempre enxergue quais valores continuam alcançáveis.
func (s *Service) Options(records []*domain.SaleRecord, state *domain.FilterState) *domain.FilterOptions {
	options := &domain.FilterOptions{
		Divisions:       s.optionsFor(records, state, "division"),
		Regions:         s.optionsFor(records, state, "region"),
		Sectors:         s.optionsFor(records, state, "sector"),
		Representatives: s.optionsFor(records, state, "representative"),
		Channels:        s.optionsFor(records, state, "channel"),
		Suppliers:       s.optionsFor(records, state, "supplier"),
	}

	months := map[string]struct{}{}
	for _, record := range records {
		months[record.Month()] = struct{}{}
	}
	options.Months = sortedKeys(months)

	return options
}

func (s *Service) optionsFor(records []*domain.SaleRecord, state *domain.FilterState, skip string) []string {
	values := map[string]struct{}{}
	extract := dimensions[skip].value

	for _, record := range records {
		if !matches(record, state, skip) {
			continue
		}
		if value := extract(record); value != "" {
			values[value] = struct{}{}
		}
	}

	return sortedKeys(values)
}

// matches avalia todos os predicados do filtro, pulando a dimensão indicada
// em skip (vazio avalia todas)
func matches(record *domain.SaleRecord, state *domain.FilterState, skip string) bool {
	if state == nil {
		return true
	}

	month := record.Month()
	if state.StartMonth != "" && month < state.StartMonth {
		return false
	}
	if state.EndMonth != "" && month > state.EndMonth {
		return false
	}

	for name, dim := range dimensions {
		if name == skip {
			continue
		}
		if !accepts(dim.active(state), dim.value(record)) {
			return false
		}
	}

	return true
}

// accepts verifica o predicado de uma dimensão: conjunto vazio ou contendo o
// sentinela "all" deixa a dimensão sem restrição
func accepts(active []string, value string) bool {
	if len(active) == 0 {
		return true
	}

	for _, accepted := range active {
		if accepted == domain.FilterAll || accepted == value {
			return true
		}
	}

	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
