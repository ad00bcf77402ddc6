package dataset

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// CSVSource lê as linhas brutas de um arquivo CSV com cabeçalho na primeira
// linha
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

func (s *CSVSource) Load(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir arquivo de vendas %s", s.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler CSV de vendas %s", s.path)
	}

	if len(lines) == 0 {
		return nil, nil
	}

	return rowsFromMatrix(lines[0], lines[1:]), nil
}

// rowsFromMatrix monta as linhas brutas rótulo → valor a partir do cabeçalho
// e das linhas de dados. Colunas além do cabeçalho são ignoradas.
func rowsFromMatrix(header []string, lines [][]string) []domain.RawRow {
	rows := make([]domain.RawRow, 0, len(lines))

	for _, line := range lines {
		row := domain.RawRow{}
		for i, label := range header {
			if i < len(line) {
				row[label] = line[i]
			}
		}
		rows = append(rows, row)
	}

	return rows
}
