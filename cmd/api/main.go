package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/database/postgres"
	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/dataset"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/api"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/scheduler"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/aggregating"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/authenticating"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/dashboarding"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/filtering"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/geo"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/kpi"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/normalizing"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/pivoting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conexão Postgres só é aberta quando a fonte de dados exige
	var pgConn *postgres.Connection
	if cfg.Dataset.Source == "postgres" {
		pgConn = pgconn(ctx, cfg.Database)
		defer pgConn.Close()
	}

	source, err := dataset.FromConfig(cfg, pgConn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a fonte de dados de vendas")
	}

	// Gazetteer imutável, construído uma única vez e compartilhado
	gazetteer, err := geo.NewEmbeddedGazetteer()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao construir o gazetteer de municípios")
	}
	logrus.WithField("entries", gazetteer.Len()).Info("Gazetteer de municípios carregado")

	normalizer := normalizing.NewService()
	filterer := filtering.NewService()
	calculator := kpi.NewService()
	aggregator := aggregating.NewService(calculator)
	pivoter := pivoting.NewService(calculator)
	resolver := geo.NewService(gazetteer)

	dashboardService := dashboarding.NewService(cfg, filterer, calculator, aggregator, pivoter, resolver)

	authenticator := authenticating.NewService(cfg)

	datasetSyncService := scheduler.NewDatasetSyncService(source, normalizer, dashboardService, cfg)

	// Carga inicial síncrona: o painel sobe já servindo dados
	if err := datasetSyncService.Sync(ctx); err != nil {
		logrus.WithError(err).Error("Erro na carga inicial do dataset de vendas")
	}

	if err := datasetSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do dataset")
	} else {
		logrus.Info("Agendador de recarga do dataset iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		authenticator,
		datasetSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
