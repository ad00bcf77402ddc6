package geo

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/municipios.csv
var embeddedGazetteer []byte

// Location é uma entrada resolvida do gazetteer
type Location struct {
	City      string
	State     string
	Latitude  float64
	Longitude float64
}

// Gazetteer é a tabela imutável cidade+UF → coordenadas. Construída uma única
// vez na subida do processo e nunca mais modificada, portanto segura para
// leitores concorrentes sem lock.
type Gazetteer struct {
	byCityState map[string]Location
	byCity      map[string]Location
}

// NewGazetteer constrói a tabela a partir de um CSV cidade,uf,latitude,longitude
// (com cabeçalho). A primeira entrada de cada cidade, na ordem do arquivo,
// vira o fallback para consultas sem UF.
func NewGazetteer(r io.Reader) (*Gazetteer, error) {
	reader := csv.NewReader(r)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler CSV do gazetteer")
	}

	gazetteer := &Gazetteer{
		byCityState: map[string]Location{},
		byCity:      map[string]Location{},
	}

	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}

		latitude, latErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		longitude, lonErr := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		location := Location{
			City:      NormalizeCity(row[0]),
			State:     strings.ToUpper(strings.TrimSpace(row[1])),
			Latitude:  latitude,
			Longitude: longitude,
		}

		gazetteer.byCityState[location.City+"|"+location.State] = location
		if _, exists := gazetteer.byCity[location.City]; !exists {
			gazetteer.byCity[location.City] = location
		}
	}

	return gazetteer, nil
}

// NewEmbeddedGazetteer constrói a tabela a partir do CSV embutido no binário
func NewEmbeddedGazetteer() (*Gazetteer, error) {
	return NewGazetteer(bytes.NewReader(embeddedGazetteer))
}

// Lookup resolve uma cidade já normalizada. Com UF em branco, cai para a
// primeira entrada do gazetteer com a mesma cidade, independente da UF.
func (g *Gazetteer) Lookup(city, state string) (Location, bool) {
	if state != "" {
		location, found := g.byCityState[city+"|"+state]
		return location, found
	}

	location, found := g.byCity[city]
	return location, found
}

// Len devolve o número de entradas cidade+UF carregadas
func (g *Gazetteer) Len() int {
	return len(g.byCityState)
}

var trailingStateSuffix = regexp.MustCompile(`\s*[-/]\s*[A-Z]{2}$`)

// NormalizeCity padroniza o texto livre de cidade: maiúsculas, espaços das
// pontas removidos, sem diacríticos e sem sufixo de UF embutido no texto
// (ex.: "São Paulo - SP" → "SAO PAULO")
func NormalizeCity(raw string) string {
	city := strings.ToUpper(strings.TrimSpace(raw))
	city = stripDiacritics(city)
	city = trailingStateSuffix.ReplaceAllString(city, "")
	return strings.TrimSpace(city)
}

func stripDiacritics(s string) string {
	remover := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(remover, s)
	if err != nil {
		return s
	}

	return stripped
}
