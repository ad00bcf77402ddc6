package utils

import "time"

// ParseMonth valida uma chave de mês no formato YYYY-MM. Vazio é aceito e
// devolve a própria string vazia; qualquer outro formato devolve erro.
func ParseMonth(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return "", err
	}

	return parsed.Format("2006-01"), nil
}
