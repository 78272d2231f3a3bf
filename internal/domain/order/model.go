package order

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusQuoted    = "quoted"
	StatusBooked    = "booked"
	StatusDelivered = "delivered"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusQuoted, StatusBooked, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	Status     string    `json:"status"` // draft | quoted | booked | delivered
	BasePrice  *float64  `json:"base_price"`
	FinalPrice *float64  `json:"final_price"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Filter narrows an order listing. Zero values mean "no constraint".
type Filter struct {
	LeadID string
	Status string
	Limit  int
	Offset int
}
