package domain

// KPIStats é a tupla de sete métricas calculada sobre qualquer subconjunto de
// registros. Derivada, efêmera, nunca persistida.
type KPIStats struct {
	// TotalRevenue é a soma aritmética de Amount (devoluções já negativas)
	TotalRevenue float64 `json:"total_revenue"`

	// Positivacao conta clientes distintos com saldo líquido estritamente
	// positivo no subconjunto
	Positivacao int `json:"positivacao"`

	// TotalOrders é a contagem líquida de pedidos distintos
	// (vendas − devoluções), nunca negativa
	TotalOrders int `json:"total_orders"`

	// AverageTicket é receita / pedidos (0 quando não há pedidos)
	AverageTicket float64 `json:"average_ticket"`

	// SKUPerPDV é a profundidade média de SKUs líquidos por cliente positivado
	SKUPerPDV float64 `json:"sku_per_pdv"`

	// AvgInstallments é o número médio de parcelas ponderado pela receita
	AvgInstallments float64 `json:"avg_installments"`

	// AvgTerm é o prazo médio em dias até o vencimento, ponderado pela receita
	AvgTerm float64 `json:"avg_term"`
}
