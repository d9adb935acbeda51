package domain

import "time"

// SaleStatusSold é o único status atribuído na criação de uma venda
const SaleStatusSold = "Sold"

type Sale struct {
	ID             string    `json:"id"`
	ItemName       string    `json:"item_name"`
	Platform       Platform  `json:"platform"`
	SaleDate       string    `json:"sale_date"` // Formato yyyy-mm-dd
	SalePrice      float64   `json:"sale_price"`
	PlatformFee    float64   `json:"platform_fee"`
	ItemCost       float64   `json:"item_cost"`
	ShippingCost   float64   `json:"shipping_cost"`
	Profit         float64   `json:"profit"`
	GrossTotal     *float64  `json:"gross_total"`
	ActualReceived *float64  `json:"actual_received"`
	Status         string    `json:"status"`
	ConvertedFrom  *string   `json:"converted_from"` // ID do item de estoque quando vendido pelo "mark as sold"
	CreatedAt      time.Time `json:"created_at"`
}

type CreateSaleRequest struct {
	ItemName       string      `json:"item_name"`
	Platform       string      `json:"platform"`
	SaleDate       string      `json:"sale_date"`
	SalePrice      AmountInput `json:"sale_price"`
	ItemCost       AmountInput `json:"item_cost"`
	ShippingCost   AmountInput `json:"shipping_cost"`
	GrossTotal     AmountInput `json:"gross_total"`
	ActualReceived AmountInput `json:"actual_received"`
}

// MarkSoldRequest transforma um item do estoque em venda
type MarkSoldRequest struct {
	Platform  string      `json:"platform"`
	SalePrice AmountInput `json:"sale_price"`
	SaleDate  string      `json:"sale_date"` // Vazio = hoje
}
