// Package dataset fornece as fontes de linhas brutas de venda: arquivo CSV,
// planilha XLSX ou tabela Postgres, selecionadas por configuração
package dataset

import (
	"context"
	"fmt"

	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/database/postgres"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/config"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// Source carrega o conjunto completo de linhas brutas da origem configurada.
// Cada Load devolve o conjunto inteiro; não há carga incremental.
type Source interface {
	Load(ctx context.Context) ([]domain.RawRow, error)
	Name() string
}

// FromConfig monta a fonte de dados configurada. A conexão Postgres só é
// exigida quando a fonte é "postgres".
func FromConfig(cfg *config.Config, conn *postgres.Connection) (Source, error) {
	switch cfg.Dataset.Source {
	case "csv":
		return NewCSVSource(cfg.Dataset.Path), nil
	case "xlsx":
		return NewXLSXSource(cfg.Dataset.Path, cfg.Dataset.Sheet), nil
	case "postgres":
		if conn == nil {
			return nil, fmt.Errorf("fonte de dados postgres exige conexão com o banco")
		}
		return NewPostgresSource(conn, cfg.Dataset.Table), nil
	default:
		return nil, fmt.Errorf("fonte de dados desconhecida: %q", cfg.Dataset.Source)
	}
}
