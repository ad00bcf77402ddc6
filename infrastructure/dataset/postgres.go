package dataset

import (
	"context"

	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/database/postgres"
	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/repository"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// PostgresSource lê as linhas brutas da tabela de vendas no Postgres
type PostgresSource struct {
	repo  repository.SaleRowRepository
	table string
}

func NewPostgresSource(conn *postgres.Connection, table string) *PostgresSource {
	return &PostgresSource{
		repo:  repository.NewSaleRowRepository(conn, table),
		table: table,
	}
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

func (s *PostgresSource) Load(ctx context.Context) ([]domain.RawRow, error) {
	return s.repo.ListRows(ctx)
}
