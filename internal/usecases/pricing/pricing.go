// Package pricing calcula a taxa de cada marketplace e o lucro de uma venda
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

var (
	ErrInvalidSalePrice = errors.New("invalid sale price")
	ErrInvalidAmount    = errors.New("invalid amount")
)

type feeRule struct {
	rate  decimal.Decimal
	fixed decimal.Decimal
}

var (
	feeRules = map[domain.Platform]feeRule{
		domain.PlatformEbay:    {rate: decimal.RequireFromString("0.136"), fixed: decimal.RequireFromString("0.40")},
		domain.PlatformMercari: {rate: decimal.RequireFromString("0.129"), fixed: decimal.RequireFromString("0.30")},
		domain.PlatformDepop:   {rate: decimal.RequireFromString("0.033"), fixed: decimal.RequireFromString("0.45")},
	}

	// Poshmark cobra 20% a partir de 15 e uma taxa fixa abaixo disso
	poshmarkThreshold = decimal.NewFromInt(15)
	poshmarkRate      = decimal.RequireFromString("0.20")
	poshmarkFlatFee   = decimal.RequireFromString("2.95")
)

// SaleInput reúne os valores já validados de uma venda
type SaleInput struct {
	Platform       domain.Platform
	SalePrice      float64
	ItemCost       float64
	ShippingCost   float64
	GrossTotal     *float64
	ActualReceived *float64
}

// Breakdown é o resultado do cálculo de taxa e lucro
type Breakdown struct {
	Fee    float64
	Profit float64

	// Override indica que a taxa veio dos valores reais informados no eBay
	Override bool
	// GrossTotalDefaulted indica que o total bruto não foi informado e o preço de venda foi usado no lugar
	GrossTotalDefaulted bool
}

// ComputeFee devolve a taxa cobrada pela plataforma. Plataforma desconhecida = 0.
func ComputeFee(platform domain.Platform, salePrice float64) float64 {
	return computeFee(platform, decimal.NewFromFloat(salePrice)).InexactFloat64()
}

func computeFee(platform domain.Platform, price decimal.Decimal) decimal.Decimal {
	if platform == domain.PlatformPoshmark {
		if price.GreaterThanOrEqual(poshmarkThreshold) {
			return price.Mul(poshmarkRate)
		}
		return poshmarkFlatFee
	}

	rule, ok := feeRules[platform]
	if !ok {
		return decimal.Zero
	}

	return price.Mul(rule.rate).Add(rule.fixed)
}

// Calculate aplica o caminho padrão ou o override do eBay.
// O override vale apenas para eBay com o valor efetivamente recebido informado.
func Calculate(in SaleInput) Breakdown {
	price := decimal.NewFromFloat(in.SalePrice)
	costs := decimal.NewFromFloat(in.ItemCost).Add(decimal.NewFromFloat(in.ShippingCost))

	if in.Platform == domain.PlatformEbay && in.ActualReceived != nil {
		received := decimal.NewFromFloat(*in.ActualReceived)
		gross := price
		defaulted := true
		if in.GrossTotal != nil {
			gross = decimal.NewFromFloat(*in.GrossTotal)
			defaulted = false
		}

		return Breakdown{
			Fee:                 gross.Sub(received).InexactFloat64(),
			Profit:              received.Sub(costs).InexactFloat64(),
			Override:            true,
			GrossTotalDefaulted: defaulted,
		}
	}

	fee := computeFee(in.Platform, price)
	return Breakdown{
		Fee:    fee.InexactFloat64(),
		Profit: price.Sub(fee).Sub(costs).InexactFloat64(),
	}
}

// ParseAmount interpreta um valor monetário digitado pelo usuário.
// Valor vazio é tratado como ausente (0, false).
func ParseAmount(raw string) (float64, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	return f, true, nil
}

// ParseSalePrice exige um preço de venda numérico e não negativo
func ParseSalePrice(raw string) (float64, error) {
	price, ok, err := ParseAmount(raw)
	if err != nil || !ok || price < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSalePrice, raw)
	}
	return price, nil
}
