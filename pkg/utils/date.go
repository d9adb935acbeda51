package utils

import "time"

// DateLayout é o formato de data de calendário usado em todas as coleções
const DateLayout = time.DateOnly

// ParseDate valida uma data yyyy-mm-dd. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// Today formata o dia corrente no fuso local
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
