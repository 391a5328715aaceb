package model

import "github.com/shopspring/decimal"

// DefaultAlertThreshold is the balance floor a new account starts with.
// A debit that leaves the balance strictly below this value triggers a
// low-balance notification.
var DefaultAlertThreshold = decimal.NewFromInt(100)

type Account struct {
	ID             int64           `json:"id"`
	OwnerName      string          `json:"owner_name"`
	Email          string          `json:"email"`
	DOB            string          `json:"dob"`
	Location       string          `json:"location"`
	Balance        decimal.Decimal `json:"balance"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
}
