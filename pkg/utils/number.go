package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para centavos; -0 vira 0
func RoundWithTwoDecimalPlace(f float64) float64 {
	rounded := math.Round(f*100) / 100
	if rounded == 0 {
		return 0
	}
	return rounded
}

// Float64Ptr devolve um ponteiro para o valor, útil em campos opcionais
func Float64Ptr(f float64) *float64 {
	return &f
}

func StringPtr(s string) *string {
	return &s
}
