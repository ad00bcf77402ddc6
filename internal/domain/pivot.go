package domain

// PivotRow é a linha da matriz setor × mês: as métricas de cada mês presente
// e a média aritmética da linha sobre os meses fechados (soma/janela para
// todas as métricas, inclusive as de razão)
type PivotRow struct {
	Sector  string              `json:"sector"`
	Months  map[string]KPIStats `json:"months"`
	Average KPIStats            `json:"average"`
}

// PivotTable é a matriz consumida pela tabela de calor: linhas por setor em
// ordem decrescente de receita média, totais de coluna por mês e total geral.
// Nos totais, métricas aditivas (receita, positivação, pedidos) somam as
// linhas visíveis; métricas de razão (ticket, SKU×PDV, parcelas, prazo) são a
// média aritmética delas.
type PivotTable struct {
	Rows         []*PivotRow         `json:"rows"`
	Months       []string            `json:"months"`
	ClosedMonths []string            `json:"closed_months"`
	ColumnTotals map[string]KPIStats `json:"column_totals"`
	GrandTotal   KPIStats            `json:"grand_total"`
}
