package model

import (
	"time"

	"taghazout/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID = "id"
)

const (
	ItemTypeListing = "listing"
	ItemTypePackage = "package"
)

const (
	StatusConfirmed = "confirmed"
)

// Booking is a confirmed reservation. The id is the flow reference the payment
// was charged against.
type Booking struct {
	ID              string     `db:"id"`
	ItemType        string     `db:"item_type"`
	ItemID          string     `db:"item_id"`
	ItemTitle       string     `db:"item_title"`
	GuestName       string     `db:"guest_name"`
	GuestEmail      string     `db:"guest_email"`
	GuestPhone      string     `db:"guest_phone"`
	CheckIn         *time.Time `db:"check_in"`
	CheckOut        *time.Time `db:"check_out"`
	Guests          int        `db:"guests"`
	Nights          int        `db:"nights"`
	SpecialRequests string     `db:"special_requests"`
	UnitPrice       int64      `db:"unit_price"`
	Total           int64      `db:"total"`
	Currency        string     `db:"currency"`
	Status          string     `db:"status"`
	TransactionID   string     `db:"transaction_id"`
	CardLast4       string     `db:"card_last4"`
	PaymentAttempts int        `db:"payment_attempts"`
	Lang            string     `db:"lang"`
	model.Metadata
}

// CreatedEvent is the payload published on the booking.created topic.
type CreatedEvent struct {
	ID          string    `json:"id"`
	ItemType    string    `json:"item_type"`
	ItemID      string    `json:"item_id"`
	ItemTitle   string    `json:"item_title"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	Guests      int       `json:"guests"`
	Nights      int       `json:"nights"`
	Total       int64     `json:"total"`
	Currency    string    `json:"currency"`
	Lang        string    `json:"lang"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func (b Booking) CreatedEvent() CreatedEvent {
	return CreatedEvent{
		ID:          b.ID,
		ItemType:    b.ItemType,
		ItemID:      b.ItemID,
		ItemTitle:   b.ItemTitle,
		GuestName:   b.GuestName,
		GuestEmail:  b.GuestEmail,
		Guests:      b.Guests,
		Nights:      b.Nights,
		Total:       b.Total,
		Currency:    b.Currency,
		Lang:        b.Lang,
		ConfirmedAt: b.CreatedAt,
	}
}
