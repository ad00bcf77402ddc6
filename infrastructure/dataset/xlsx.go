package dataset

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/domain"
)

// XLSXSource lê as linhas brutas de uma planilha Excel, com cabeçalho na
// primeira linha da aba configurada (aba vazia usa a primeira do arquivo)
type XLSXSource struct {
	path  string
	sheet string
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string {
	return "xlsx:" + s.path
}

func (s *XLSXSource) Load(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workbook, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir planilha de vendas %s", s.path)
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			logrus.WithError(err).Warn("dataset: erro ao fechar planilha de vendas")
		}
	}()

	sheet := s.sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}

	lines, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %q da planilha de vendas", sheet)
	}

	if len(lines) == 0 {
		return nil, nil
	}

	return rowsFromMatrix(lines[0], lines[1:]), nil
}
