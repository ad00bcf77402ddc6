package dashboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/aggregating"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/filtering"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/geo"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/kpi"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/pivoting"
)

func newDashboard(t *testing.T, cfg *config.Config) Dashboarder {
	t.Helper()

	gazetteer, err := geo.NewEmbeddedGazetteer()
	require.NoError(t, err)

	calculator := kpi.NewService()
	return NewService(
		cfg,
		filtering.NewService(),
		calculator,
		aggregating.NewService(calculator),
		pivoting.NewService(calculator),
		geo.NewService(gazetteer),
	)
}

func dashboardRow(month, division, clientID, orderID string, amount float64) *domain.SaleRecord {
	issueDate, _ := time.Parse("2006-01", month)
	return &domain.SaleRecord{
		IssueDate:   issueDate,
		Division:    division,
		Sector:      "SETOR 10",
		ClientID:    clientID,
		ProductCode: "P1",
		OrderID:     orderID,
		Amount:      amount,
		Quantity:    1,
		Operation:   domain.OperationSale,
		City:        "São Paulo",
		State:       "SP",
	}
}

func TestService_ReferencePeriod(t *testing.T) {
	t.Run("Mês configurado prevalece sobre os dados", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Report.ReferenceMonth = "2024-06"
		cfg.Report.ComparisonWindowMonths = 3

		dashboard := newDashboard(t, cfg)
		dashboard.ReplaceRecords([]*domain.SaleRecord{
			dashboardRow("2024-09", "ALIMENTAR", "C1", "O1", 100),
		})

		ref := dashboard.ReferencePeriod()
		assert.Equal(t, "2024-06", ref.Current)
		assert.Equal(t, []string{"2024-05", "2024-04", "2024-03"}, ref.ClosedMonths)
	})

	t.Run("Sem configuração, deriva do mês mais recente do snapshot", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Report.ComparisonWindowMonths = 2

		dashboard := newDashboard(t, cfg)
		dashboard.ReplaceRecords([]*domain.SaleRecord{
			dashboardRow("2024-03", "ALIMENTAR", "C1", "O1", 100),
			dashboardRow("2024-07", "ALIMENTAR", "C1", "O2", 100),
			dashboardRow("2024-05", "ALIMENTAR", "C1", "O3", 100),
		})

		ref := dashboard.ReferencePeriod()
		assert.Equal(t, "2024-07", ref.Current)
		assert.Equal(t, []string{"2024-06", "2024-05"}, ref.ClosedMonths)
	})

	t.Run("Snapshot vazio degrada para período vazio", func(t *testing.T) {
		dashboard := newDashboard(t, &config.Config{})

		ref := dashboard.ReferencePeriod()
		assert.Empty(t, ref.Current)
		assert.Empty(t, ref.ClosedMonths)
	})
}

func TestService_ReplaceRecords(t *testing.T) {
	cfg := &config.Config{}
	cfg.Report.ComparisonWindowMonths = 3

	dashboard := newDashboard(t, cfg)
	assert.Zero(t, dashboard.RecordCount())

	dashboard.ReplaceRecords([]*domain.SaleRecord{
		dashboardRow("2024-06", "ALIMENTAR", "C1", "O1", 100),
		dashboardRow("2024-06", "HIGIENE", "C2", "O2", 200),
	})
	assert.Equal(t, 2, dashboard.RecordCount())

	// a troca substitui o snapshot inteiro
	dashboard.ReplaceRecords([]*domain.SaleRecord{
		dashboardRow("2024-07", "ALIMENTAR", "C1", "O3", 50),
	})
	assert.Equal(t, 1, dashboard.RecordCount())
	assert.Equal(t, "2024-07", dashboard.ReferencePeriod().Current)
}

func TestService_PaineisSobreOMesmoSubconjunto(t *testing.T) {
	cfg := &config.Config{}
	cfg.Report.ReferenceMonth = "2024-06"
	cfg.Report.ComparisonWindowMonths = 3

	dashboard := newDashboard(t, cfg)
	dashboard.ReplaceRecords([]*domain.SaleRecord{
		dashboardRow("2024-06", "ALIMENTAR", "C1", "O1", 300),
		dashboardRow("2024-06", "HIGIENE", "C2", "O2", 700),
	})

	state := &domain.FilterState{Divisions: []string{"ALIMENTAR"}}

	t.Run("Resumo respeita o filtro", func(t *testing.T) {
		summary := dashboard.Summary(state)
		assert.InDelta(t, 300, summary.TotalRevenue, 0.0001)
		assert.Equal(t, 1, summary.Positivacao)
	})

	t.Run("Opções em cascata sobre o snapshot", func(t *testing.T) {
		options := dashboard.Options(state)
		assert.Equal(t, []string{"ALIMENTAR", "HIGIENE"}, options.Divisions)
		assert.Equal(t, []string{"2024-06"}, options.Months)
	})

	t.Run("Entidades propagam erro de dimensão desconhecida", func(t *testing.T) {
		_, err := dashboard.Entities(state, "produto")
		assert.Error(t, err)
	})

	t.Run("Rankings e matriz usam o mesmo subconjunto", func(t *testing.T) {
		entities, err := dashboard.Entities(state, domain.DimensionClient)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "C1", entities[0].Key)

		products := dashboard.Products(state)
		require.Len(t, products, 1)
		assert.InDelta(t, 300, products[0].Revenue, 0.0001)

		pivot := dashboard.Pivot(state)
		require.Len(t, pivot.Rows, 1)
		assert.InDelta(t, 300, pivot.ColumnTotals["2024-06"].TotalRevenue, 0.0001)
	})

	t.Run("Mapa resolve as cidades do subconjunto", func(t *testing.T) {
		locations := dashboard.Map(state)
		require.Len(t, locations, 1)
		assert.Equal(t, "SAO PAULO", locations[0].City)
		assert.InDelta(t, 300, locations[0].Revenue, 0.0001)
	})
}
