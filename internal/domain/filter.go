package domain

// FilterAll é o valor sentinela que deixa uma dimensão sem restrição,
// equivalente ao conjunto vazio
const FilterAll = "all"

// Dimensões filtráveis aceitas pelos endpoints de agregação por entidade
const (
	DimensionClient         = "cliente"
	DimensionNetwork        = "rede"
	DimensionSupplier       = "fornecedor"
	DimensionRepresentative = "representante"
)

// FilterState descreve o filtro multidimensional do painel: por dimensão, o
// conjunto de valores aceitos, mais um intervalo fechado de meses [Start, End]
// no formato YYYY-MM comparado como prefixo da data de emissão.
type FilterState struct {
	Divisions       []string `json:"divisions"`
	Regions         []string `json:"regions"`
	Sectors         []string `json:"sectors"`
	Representatives []string `json:"representatives"`
	Channels        []string `json:"channels"`
	Suppliers       []string `json:"suppliers"`
	StartMonth      string   `json:"start_month"`
	EndMonth        string   `json:"end_month"`
}

// FilterOptions são os valores ainda alcançáveis por dimensão, já deduplicados
// e em ordem lexical crescente. Para cada dimensão o próprio filtro dela é
// ignorado no cálculo, para que o usuário sempre veja o que continua
// selecionável.
type FilterOptions struct {
	Divisions       []string `json:"divisions"`
	Regions         []string `json:"regions"`
	Sectors         []string `json:"sectors"`
	Representatives []string `json:"representatives"`
	Channels        []string `json:"channels"`
	Suppliers       []string `json:"suppliers"`
	Months          []string `json:"months"`
}
