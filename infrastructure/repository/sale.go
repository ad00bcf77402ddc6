package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/leonaardoschneider1/painel-vendas-api/infrastructure/database/postgres"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// Rótulos canônicos na ordem das colunas selecionadas. O normalizador resolve
// esses rótulos pelos mesmos sinônimos usados nos arquivos.
var saleColumns = []struct {
	column string
	label  string
}{
	{"data_emissao", "Data Emissão"},
	{"regional", "Regional"},
	{"divisao", "Divisão"},
	{"setor", "Setor"},
	{"representante", "Representante"},
	{"canal", "Canal"},
	{"fornecedor", "Fornecedor"},
	{"cnpj", "CNPJ"},
	{"razao_social", "Razão Social"},
	{"cod_produto", "Cód. Produto"},
	{"descricao_produto", "Descrição Produto"},
	{"valor_total", "Vlr. Total"},
	{"qtde", "Qtde"},
	{"pedido", "Nº Pedido"},
	{"tipo", "Tipo"},
	{"cond_pagto", "Cond. Pagto"},
	{"rede", "Rede"},
	{"cidade", "Cidade"},
	{"uf", "UF"},
}

// SaleRowRepository lê as linhas brutas de venda da tabela configurada
type SaleRowRepository interface {
	ListRows(ctx context.Context) ([]domain.RawRow, error)
}

type saleRowRepository struct {
	conn  postgres.Queryer
	table string
}

func NewSaleRowRepository(conn postgres.Queryer, table string) SaleRowRepository {
	return &saleRowRepository{
		conn:  conn,
		table: table,
	}
}

// ListRows carrega a tabela inteira como linhas rótulo → valor texto, no
// mesmo contrato das fontes de arquivo
func (r *saleRowRepository) ListRows(ctx context.Context) ([]domain.RawRow, error) {
	columns := make([]string, 0, len(saleColumns))
	for _, c := range saleColumns {
		columns = append(columns, c.column)
	}

	query, args, err := squirrel.
		Select(columns...).
		From(r.table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	var rawRows []domain.RawRow
	for rows.Next() {
		values := make([]sql.NullString, len(saleColumns))
		scanTargets := make([]interface{}, len(saleColumns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de venda: %w", err)
		}

		row := domain.RawRow{}
		for i, c := range saleColumns {
			row[c.label] = values[i].String
		}
		rawRows = append(rawRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar linhas de venda: %w", err)
	}

	return rawRows, nil
}
