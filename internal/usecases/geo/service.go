// Package geo resolve cidades em texto livre contra o gazetteer e agrega
// receita por localização
package geo

import (
	"sort"
	"strings"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

// Resolver agrega receita por cidade resolvida
type Resolver interface {
	Aggregate(records []*domain.SaleRecord) []*domain.GeoStats
}

type Service struct {
	gazetteer *Gazetteer
}

// NewService recebe o gazetteer já construído; o serviço nunca o reconstrói
// nem o modifica
func NewService(gazetteer *Gazetteer) Resolver {
	return &Service{gazetteer: gazetteer}
}

// Aggregate soma a receita assinada e conta linhas de valor estritamente
// positivo por cidade resolvida. Registros sem cidade ou fora do gazetteer
// ficam silenciosamente de fora do resultado, sem afetar outras agregações.
func (s *Service) Aggregate(records []*domain.SaleRecord) []*domain.GeoStats {
	byLocation := map[string]*domain.GeoStats{}

	for _, record := range records {
		if strings.TrimSpace(record.City) == "" {
			continue
		}

		city := NormalizeCity(record.City)
		location, found := s.gazetteer.Lookup(city, strings.ToUpper(strings.TrimSpace(record.State)))
		if !found {
			continue
		}

		key := location.City + "|" + location.State
		stats := byLocation[key]
		if stats == nil {
			stats = &domain.GeoStats{
				City:      location.City,
				State:     location.State,
				Latitude:  location.Latitude,
				Longitude: location.Longitude,
			}
			byLocation[key] = stats
		}

		stats.Revenue += record.Amount
		if record.Amount > 0 {
			stats.Positivacao++
		}
	}

	aggregated := make([]*domain.GeoStats, 0, len(byLocation))
	for _, stats := range byLocation {
		stats.Revenue = utils.RoundWithTwoDecimalPlace(stats.Revenue)
		aggregated = append(aggregated, stats)
	}

	sort.Slice(aggregated, func(i, j int) bool {
		return aggregated[i].Revenue > aggregated[j].Revenue
	})

	return aggregated
}
