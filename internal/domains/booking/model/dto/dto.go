package dto

import (
	"time"

	"taghazout/infras/payment"
	"taghazout/internal/domains/booking/flow"
	"taghazout/internal/domains/booking/model"
	"taghazout/internal/domains/booking/pricing"
	"taghazout/shared/constant"
	gDto "taghazout/shared/dto"
	"taghazout/shared/failure"
	"taghazout/shared/timezone"
)

// QuoteRequest prices a stay without starting a booking.
type QuoteRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=listing package"`
	ItemID   string `json:"item_id"   validate:"required,max=100"`
	CheckIn  string `json:"check_in"  validate:"omitempty"`
	CheckOut string `json:"check_out" validate:"omitempty"`
	Guests   int    `json:"guests"    validate:"min=1,max=50"`
}

func (r QuoteRequest) Dates() (*time.Time, *time.Time, error) {
	return parseDates(r.CheckIn, r.CheckOut)
}

type QuoteResponse struct {
	ItemType  string `json:"item_type"`
	ItemID    string `json:"item_id"`
	Nights    int    `json:"nights"`
	Guests    int    `json:"guests"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
	Currency  string `json:"currency"`
}

func (r *QuoteResponse) FromQuote(offer flow.Offer, quote pricing.Quote) {
	r.ItemType = offer.ItemType
	r.ItemID = offer.ItemID
	r.Nights = quote.Nights
	r.Guests = quote.Guests
	r.UnitPrice = quote.UnitPrice
	r.Total = quote.Total
	r.Currency = offer.Currency
}

// CreateBookingRequest carries both the details and the payment step in one
// submission. Guest fields and the card are validated by the flow.
type CreateBookingRequest struct {
	ItemType        string       `json:"item_type"        validate:"required,oneof=listing package"`
	ItemID          string       `json:"item_id"          validate:"required,max=100"`
	GuestName       string       `json:"guest_name"`
	GuestEmail      string       `json:"guest_email"`
	GuestPhone      string       `json:"guest_phone"`
	CheckIn         string       `json:"check_in"`
	CheckOut        string       `json:"check_out"`
	Guests          int          `json:"guests"`
	SpecialRequests string       `json:"special_requests"`
	Payment         payment.Card `json:"payment"          validate:"-"`
}

func (r CreateBookingRequest) Details() (flow.Details, error) {
	checkIn, checkOut, err := parseDates(r.CheckIn, r.CheckOut)
	if err != nil {
		return flow.Details{}, err
	}

	return flow.Details{
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

type PaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Last4         string `json:"last4"`
	Attempts      int    `json:"attempts"`
}

type BookingResponse struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	ItemType        string          `json:"item_type"`
	ItemID          string          `json:"item_id"`
	ItemTitle       string          `json:"item_title"`
	GuestName       string          `json:"guest_name"`
	GuestEmail      string          `json:"guest_email"`
	GuestPhone      string          `json:"guest_phone,omitempty"`
	CheckIn         string          `json:"check_in,omitempty"`
	CheckOut        string          `json:"check_out,omitempty"`
	Guests          int             `json:"guests"`
	Nights          int             `json:"nights"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	UnitPrice       int64           `json:"unit_price"`
	Total           int64           `json:"total"`
	Currency        string          `json:"currency"`
	Payment         PaymentResponse `json:"payment"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Status = model.Status
	r.ItemType = model.ItemType
	r.ItemID = model.ItemID
	r.ItemTitle = model.ItemTitle
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckIn = formatDate(model.CheckIn)
	r.CheckOut = formatDate(model.CheckOut)
	r.Guests = model.Guests
	r.Nights = model.Nights
	r.SpecialRequests = model.SpecialRequests
	r.UnitPrice = model.UnitPrice
	r.Total = model.Total
	r.Currency = model.Currency
	r.Payment = PaymentResponse{
		TransactionID: model.TransactionID,
		Last4:         model.CardLast4,
		Attempts:      model.PaymentAttempts,
	}
	r.Metadata.FromModel(model.Metadata)
}

// parseDates accepts a bare date or an RFC 3339 timestamp for either side.
// Empty strings leave the date unset.
func parseDates(checkIn, checkOut string) (*time.Time, *time.Time, error) {
	in, err := parseDate("check_in", checkIn)
	if err != nil {
		return nil, nil, err
	}

	out, err := parseDate("check_out", checkOut)
	if err != nil {
		return nil, nil, err
	}

	return in, out, nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	t, err := timezone.ParseDate(value)
	if err != nil {
		msg := field + " must be a date (YYYY-MM-DD)"

		return nil, failure.Validation(msg, map[string]string{field: msg}) //nolint:wrapcheck
	}

	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return timezone.Format(*t, constant.DateOnlyFormat)
}
