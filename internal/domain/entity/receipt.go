package entity

import "github.com/shopspring/decimal"

// ReceiptHeader is printed at the top of every ticket.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Terminal  string `json:"terminal,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a printable view of a sale, composed at print time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	Reference     string          `json:"reference"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	Location      string          `json:"location,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	Items         []ReceiptItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Received      decimal.Decimal `json:"received"`
	Change        decimal.Decimal `json:"change"`
}
