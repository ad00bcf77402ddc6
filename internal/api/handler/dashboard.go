package handler

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/dashboarding"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/apiErrors"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/log"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// filterStateFromQuery monta o estado do filtro a partir da query string.
// Dimensões aceitam valores múltiplos separados por vírgula; ausência (ou o
// sentinela "all") deixa a dimensão sem restrição.
func filterStateFromQuery(r *http.Request) *domain.FilterState {
	query := r.URL.Query()

	return &domain.FilterState{
		Divisions:       splitValues(query.Get("divisions")),
		Regions:         splitValues(query.Get("regions")),
		Sectors:         splitValues(query.Get("sectors")),
		Representatives: splitValues(query.Get("representatives")),
		Channels:        splitValues(query.Get("channels")),
		Suppliers:       splitValues(query.Get("suppliers")),
		StartMonth:      monthOrEmpty(query.Get("start")),
		EndMonth:        monthOrEmpty(query.Get("end")),
	}
}

// monthOrEmpty descarta chaves de mês malformadas em vez de propagar erro de
// validação: um intervalo inválido degrada para "sem restrição"
func monthOrEmpty(raw string) string {
	month, err := utils.ParseMonth(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return month
}

func splitValues(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}

// GetFilterOptions retorna os valores ainda selecionáveis por dimensão, dado
// o filtro ativo
func GetFilterOptions(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-options", service.Options(filterStateFromQuery(r)))
	}
}

// GetSummary retorna a bateria de KPIs do subconjunto filtrado
func GetSummary(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-summary", service.Summary(filterStateFromQuery(r)))
	}
}

// GetEntities retorna o ranking por entidade da dimensão pedida na URL
func GetEntities(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dimension := httprouter.ParamsFromContext(r.Context()).ByName("dimension")

		entities, err := service.Entities(filterStateFromQuery(r), dimension)
		if err != nil {
			logger.WithError(err).Warn("dashboard-entities: dimensão inválida")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		respondJSON(w, r, "dashboard-entities", entities)
	}
}

// GetSuppliers retorna o ranking por fornecedor com contagem de SKUs
func GetSuppliers(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-suppliers", service.Suppliers(filterStateFromQuery(r)))
	}
}

// GetProducts retorna o ranking de produtos do mês de referência
func GetProducts(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-products", service.Products(filterStateFromQuery(r)))
	}
}

// GetPivot retorna a matriz setor × mês
func GetPivot(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-pivot", service.Pivot(filterStateFromQuery(r)))
	}
}

// GetMap retorna a agregação de receita por cidade resolvida
func GetMap(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-map", service.Map(filterStateFromQuery(r)))
	}
}

// GetReferencePeriod retorna o recorte temporal em uso nas agregações
func GetReferencePeriod(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, "dashboard-period", service.ReferencePeriod())
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, operation string, payload any) {
	logger := log.ForContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Errorf("%s: erro ao codificar resposta", operation)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
