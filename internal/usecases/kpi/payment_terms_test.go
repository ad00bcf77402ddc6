package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTerms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected termKind
		tokens   int
	}{
		{"Prazos numéricos separados por hífen", "30-60-90", termNumericOffsets, 3},
		{"Prazos numéricos separados por barra", "28/56", termNumericOffsets, 2},
		{"Datas de vencimento explícitas", "10/02/2024 20/03/2024", termExplicitDates, 2},
		{"Texto livre vira tokens de parcela", "À VISTA", termNumericOffsets, 1},
		{"Vazio é ininterpretável", "", termUnparseable, 0},
		{"Só separadores é ininterpretável", "-/-", termUnparseable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, tokens := classifyTerms(tt.text)
			assert.Equal(t, tt.expected, kind)
			assert.Len(t, tokens, tt.tokens)
		})
	}
}

func TestInstallmentCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"Três prazos numéricos", "30-60-90", 3},
		{"Duas datas explícitas", "10/02/2024 20/03/2024", 2},
		{"Pagamento à vista", "À VISTA", 1},
		{"Sem condição", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, installmentCount(tt.text))
		})
	}
}

func TestTermDays(t *testing.T) {
	issueDate, _ := time.Parse(time.DateOnly, "2024-01-10")

	tests := []struct {
		name     string
		text     string
		expected float64
		valid    bool
	}{
		{"Prazos numéricos médios", "30-60-90", 60, true},
		{"Data explícita um mês depois", "10/02/2024", 31, true},
		{"Duas datas explícitas médias", "10/02/2024 11/03/2024", 46, true},
		{"Prazo fora do intervalo é ignorado", "2500-30", 30, true},
		{"Zero é ignorado", "0-30", 30, true},
		{"Nenhum prazo válido", "2500", 0, false},
		{"Texto não numérico sem data", "A COMBINAR", 0, false},
		{"Vencimento anterior à emissão é negativo e inválido", "01/01/2024", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, valid := termDays(issueDate, tt.text)
			assert.Equal(t, tt.valid, valid)
			if tt.valid {
				assert.InDelta(t, tt.expected, days, 0.001)
			}
		})
	}
}
