// Package scheduler contém o serviço de agendamento da recarga do conjunto
// de dados de vendas
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/dataset"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/normalizing"
)

// RecordSink recebe o snapshot recarregado de registros canônicos
type RecordSink interface {
	ReplaceRecords(records []*domain.SaleRecord)
	RecordCount() int
}

type DatasetSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

// DatasetSyncService recarrega periodicamente as linhas brutas da fonte
// configurada, normaliza e troca o snapshot do painel. As métricas nunca são
// persistidas; cada recarga substitui apenas os registros brutos em memória.
type DatasetSyncService struct {
	scheduler  *gocron.Scheduler
	source     dataset.Source
	normalizer normalizing.Normalizer
	sink       RecordSink
	config     DatasetSyncConfig

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewDatasetSyncService(
	source dataset.Source,
	normalizer normalizing.Normalizer,
	sink RecordSink,
	cfg *config.Config,
) *DatasetSyncService {
	syncConfig := DatasetSyncConfig{
		CronSchedule: cfg.DatasetSync.CronSchedule,
		Enabled:      cfg.DatasetSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"source":        source.Name(),
	}).Info("Configuração do agendador de recarga do dataset carregada")

	return &DatasetSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		source:     source,
		normalizer: normalizer,
		sink:       sink,
		config:     syncConfig,
	}
}

func (s *DatasetSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de recarga do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do dataset de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Sync(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na recarga agendada do dataset de vendas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do dataset de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recarga do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// Sync executa uma recarga completa: Load → Normalize → troca do snapshot.
// Execuções sobrepostas são ignoradas.
func (s *DatasetSyncService) Sync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Recarga do dataset já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.WithField("source", s.source.Name()).Info("Iniciando recarga do dataset de vendas")

	rows, err := s.source.Load(ctx)
	if err != nil {
		s.syncMutex.Lock()
		s.lastSyncError = err.Error()
		s.syncMutex.Unlock()
		return fmt.Errorf("erro ao carregar linhas da fonte %s: %w", s.source.Name(), err)
	}

	records := s.normalizer.Normalize(rows)
	s.sink.ReplaceRecords(records)

	s.syncMutex.Lock()
	s.lastSyncError = ""
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"raw_rows": len(rows),
		"records":  len(records),
	}).Info("Recarga do dataset de vendas concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma recarga do dataset
func (s *DatasetSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do dataset já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual do dataset de vendas")
	go func() {
		if err := s.Sync(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na recarga manual do dataset de vendas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DatasetSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"source":                 s.source.Name(),
		"records_loaded":         s.sink.RecordCount(),
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
