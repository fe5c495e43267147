package models

import "time"

// SaleTransaction is one row of the HM Land Registry price-paid dataset:
// a historical sale, read-only once loaded.
type SaleTransaction struct {
	PricePaid int64     `json:"price_paid"`
	DeedDate  time.Time `json:"deed_date"`
	PAON      string    `json:"paon"`
	Street    string    `json:"street"`
	Town      string    `json:"town"`
	Postcode  string    `json:"postcode"`
	TypeCode  string    `json:"property_type"`
}
