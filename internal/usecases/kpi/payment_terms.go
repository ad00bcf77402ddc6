package kpi

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// As condições de pagamento chegam como texto livre em duas gramáticas:
// datas de vencimento explícitas (DD/MM/AAAA, uma ou mais) ou prazos
// numéricos em dias separados por "-" ou "/" (ex.: "30-60-90"). O texto é
// classificado uma única vez e cada uso despacha pela variante.
type termKind int

const (
	termUnparseable termKind = iota
	termExplicitDates
	termNumericOffsets
)

var dueDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)

// maxTermDays limita os prazos numéricos aceitos; tokens fora de (0, 2000)
// são ignorados
const maxTermDays = 2000

// classifyTerms classifica o texto e devolve os tokens da variante
// encontrada: datas de vencimento, ou os tokens não vazios da separação por
// "-" e "/"
func classifyTerms(text string) (termKind, []string) {
	if dates := dueDatePattern.FindAllString(text, -1); len(dates) > 0 {
		return termExplicitDates, dates
	}

	tokens := splitTerms(text)
	if len(tokens) == 0 {
		return termUnparseable, nil
	}

	return termNumericOffsets, tokens
}

func splitTerms(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == '/'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}

	return tokens
}

// installmentCount deriva o número de parcelas do texto da condição: havendo
// datas de vencimento, é a quantidade delas; senão, a quantidade de tokens
// não vazios. Zero significa linha sem parcela interpretável.
func installmentCount(text string) int {
	kind, tokens := classifyTerms(text)
	if kind == termUnparseable {
		return 0
	}
	return len(tokens)
}

// termDays calcula o prazo médio em dias entre a emissão e o(s)
// vencimento(s). Datas explícitas viram dias corridos até cada vencimento;
// prazos numéricos em (0, 2000) são usados diretamente. Sem valor válido, ou
// com média negativa, o pedido fica fora da ponderação.
func termDays(issueDate time.Time, text string) (float64, bool) {
	kind, tokens := classifyTerms(text)

	var sum float64
	var count int

	switch kind {
	case termExplicitDates:
		for _, token := range tokens {
			dueDate, err := time.Parse("02/01/2006", token)
			if err != nil {
				continue
			}
			sum += dueDate.Sub(issueDate).Hours() / 24
			count++
		}
	case termNumericOffsets:
		for _, token := range tokens {
			days, err := strconv.ParseFloat(token, 64)
			if err != nil || days <= 0 || days >= maxTermDays {
				continue
			}
			sum += days
			count++
		}
	default:
		return 0, false
	}

	if count == 0 {
		return 0, false
	}

	average := sum / float64(count)
	if average < 0 {
		return 0, false
	}

	return average, true
}
