package domain

import "time"

// OperationClass indica se a linha representa uma venda ou uma devolução
type OperationClass string

const (
	OperationSale   OperationClass = "VENDA"
	OperationReturn OperationClass = "DEVOLUCAO"
)

// Canais de venda conhecidos. Valores fora desse conjunto são normalizados
// para ChannelFallback.
const (
	ChannelDistribuidor = "DISTRIBUIDOR"
	ChannelAtacado      = "ATACADO"
	ChannelVarejo       = "VAREJO"
	ChannelKeyAccount   = "KEY ACCOUNT"

	ChannelFallback = ChannelVarejo
)

// KnownChannels lista os canais aceitos pelo normalizador
var KnownChannels = []string{
	ChannelDistribuidor,
	ChannelAtacado,
	ChannelVarejo,
	ChannelKeyAccount,
}

// SaleRecord é a linha de venda canônica produzida pelo normalizador.
// Imutável depois de construída.
//
// Amount já carrega o sinal correto para o cálculo de receita líquida
// (vendas positivas, devoluções negativas). O restante do motor nunca
// re-deriva o sinal do Amount a partir de Operation; Operation só
// reinterpreta quantidade e semântica de conjuntos.
type SaleRecord struct {
	ID                 string         `json:"id"`
	IssueDate          time.Time      `json:"issue_date"`
	Region             string         `json:"region"`
	Division           string         `json:"division"`
	Sector             string         `json:"sector"`
	Representative     string         `json:"representative"`
	Channel            string         `json:"channel"`
	Supplier           string         `json:"supplier"`
	ClientID           string         `json:"client_id"`
	ClientName         string         `json:"client_name"`
	ProductCode        string         `json:"product_code"`
	ProductDescription string         `json:"product_description"`
	Amount             float64        `json:"amount"`
	Quantity           int            `json:"quantity"`
	OrderID            string         `json:"order_id"`
	Operation          OperationClass `json:"operation"`
	PaymentTerms       string         `json:"payment_terms"`
	Network            string         `json:"network"`
	City               string         `json:"city,omitempty"`
	State              string         `json:"state,omitempty"`
}

// Month retorna a chave de mês da emissão no formato YYYY-MM
func (r *SaleRecord) Month() string {
	return r.IssueDate.Format("2006-01")
}

// RawRow é uma linha bruta da fonte de dados: rótulo de coluna → valor texto.
// Os rótulos variam entre sinônimos conhecidos, resolvidos pelo normalizador.
type RawRow map[string]string
