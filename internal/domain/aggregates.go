package domain

// EntityStats é a projeção por entidade (cliente, rede, representante):
// métricas do mês corrente contra a média de receita dos meses fechados.
// Somente leitura após construída.
type EntityStats struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	Current KPIStats `json:"current"`

	// HistoricalRevenue é a média de receita dos meses fechados
	HistoricalRevenue float64 `json:"historical_revenue"`

	// TrendPct é (corrente − histórico) / histórico × 100. Com histórico
	// zerado: 100 quando há receita corrente, 0 quando não há.
	TrendPct float64 `json:"trend_pct"`
}

// SupplierStats acrescenta à projeção por fornecedor a contagem de SKUs
// distintos vendidos no mês corrente
type SupplierStats struct {
	EntityStats

	SKUCount int `json:"sku_count"`
}

// ProductStats é a projeção por produto restrita ao mês corrente. Receita e
// quantidade líquida carregam sinal (devoluções subtraem); clientes e pedidos
// distintos contam apenas linhas de venda.
type ProductStats struct {
	ProductCode string  `json:"product_code"`
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
	NetQuantity int     `json:"net_quantity"`
	ClientCount int     `json:"client_count"`
	OrderCount  int     `json:"order_count"`
}

// GeoStats é a agregação de receita por cidade resolvida no gazetteer
type GeoStats struct {
	City        string  `json:"city"`
	State       string  `json:"state"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Revenue     float64 `json:"revenue"`
	Positivacao int     `json:"positivacao"`
}
