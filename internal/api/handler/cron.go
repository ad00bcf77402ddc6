package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/scheduler"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/apiErrors"
)

// RunDatasetSync dispara manualmente a recarga do dataset de vendas
func RunDatasetSync(service *scheduler.DatasetSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunDatasetSync")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga do dataset não disponível", nil)
			return
		}

		service.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "recarga do dataset iniciada",
		})
	}
}

// GetDatasetSyncStatus retorna o status do agendador de recarga
func GetDatasetSyncStatus(service *scheduler.DatasetSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga do dataset não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GetStatus())
	}
}
