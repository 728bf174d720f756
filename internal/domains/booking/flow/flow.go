// Package flow drives a single booking from guest details through payment to
// confirmation. A Flow is a plain value owned by one request; it is not safe for
// concurrent use.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taghazout/infras/payment"
	"taghazout/internal/domains/booking/pricing"
	"taghazout/shared/failure"
	"taghazout/shared/validator"
)

type Step string

const (
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// ErrInvalidTransition is returned when an action is not allowed in the current step.
var ErrInvalidTransition = errors.New("invalid booking step transition")

// Offer is the bookable item the flow prices against.
type Offer struct {
	ItemType  string
	ItemID    string
	Title     string
	UnitPrice int64
	Currency  string
	Capacity  *int
}

// Details is the guest form of the first step.
type Details struct {
	GuestName       string     `json:"guest_name"       validate:"required,min=2,max=100"`
	GuestEmail      string     `json:"guest_email"      validate:"required,email,max=100"`
	GuestPhone      string     `json:"guest_phone"      validate:"omitempty,max=20"`
	CheckIn         *time.Time `json:"check_in"`
	CheckOut        *time.Time `json:"check_out"`
	Guests          int        `json:"guests"           validate:"min=1,max=50"`
	SpecialRequests string     `json:"special_requests" validate:"omitempty,max=1000"`
}

type Flow struct {
	reference string
	step      Step
	offer     Offer
	details   Details
	quote     pricing.Quote
	receipt   payment.Receipt
	lastErr   error
	attempts  int
}

func New(offer Offer) *Flow {
	return &Flow{
		reference: uuid.NewString(),
		step:      StepDetails,
		offer:     offer,
	}
}

func (f *Flow) Reference() string        { return f.reference }
func (f *Flow) Step() Step               { return f.step }
func (f *Flow) Offer() Offer             { return f.offer }
func (f *Flow) Details() Details         { return f.details }
func (f *Flow) Quote() pricing.Quote     { return f.quote }
func (f *Flow) Receipt() payment.Receipt { return f.receipt }
func (f *Flow) LastError() error         { return f.lastErr }
func (f *Flow) PaymentAttempts() int     { return f.attempts }
func (f *Flow) Confirmed() bool          { return f.step == StepConfirmation }

// SubmitDetails validates the guest form, prices the stay and advances to payment.
// The flow stays on details when validation fails.
func (f *Flow) SubmitDetails(details Details) error {
	if f.step != StepDetails {
		return fmt.Errorf("submit details in %s step: %w", f.step, ErrInvalidTransition)
	}

	if err := validator.ValidateStruct(&details); err != nil {
		return err //nolint:wrapcheck
	}

	quote, err := Price(f.offer, details.CheckIn, details.CheckOut, details.Guests)
	if err != nil {
		return err
	}

	f.details = details
	f.quote = quote
	f.step = StepPayment

	return nil
}

// Price quotes an offer without starting a booking. Capacity and date order
// are enforced the same way the details step does.
func Price(offer Offer, checkIn, checkOut *time.Time, guests int) (pricing.Quote, error) {
	if offer.Capacity != nil && guests > *offer.Capacity {
		msg := fmt.Sprintf("guests must not exceed capacity of %d", *offer.Capacity)

		return pricing.Quote{}, failure.Validation(msg, map[string]string{"guests": msg}) //nolint:wrapcheck
	}

	quote, err := pricing.Calculate(offer.UnitPrice, checkIn, checkOut, guests)
	if err != nil {
		return pricing.Quote{}, detailsFailure(err)
	}

	return quote, nil
}

// SubmitPayment charges the quoted total. On failure the flow stays on payment
// with the error recorded so the guest can retry with another card.
func (f *Flow) SubmitPayment(ctx context.Context, gateway payment.Gateway, card payment.Card) error {
	if f.step != StepPayment {
		return fmt.Errorf("submit payment in %s step: %w", f.step, ErrInvalidTransition)
	}

	if err := validator.ValidateStruct(&card); err != nil {
		f.lastErr = err

		return err //nolint:wrapcheck
	}

	f.attempts++

	receipt, err := gateway.Charge(ctx, payment.Charge{
		Reference: f.reference,
		Amount:    f.quote.Total,
		Currency:  f.offer.Currency,
		Card:      card,
	})
	if err != nil {
		f.lastErr = err

		return fmt.Errorf("charge booking %s: %w", f.reference, err)
	}

	f.receipt = receipt
	f.lastErr = nil
	f.step = StepConfirmation

	return nil
}

// Back returns from payment to details, keeping the entered details.
func (f *Flow) Back() error {
	if f.step != StepPayment {
		return fmt.Errorf("back from %s step: %w", f.step, ErrInvalidTransition)
	}

	f.step = StepDetails
	f.lastErr = nil

	return nil
}

// Reset starts a fresh draft for the same offer.
func (f *Flow) Reset() {
	*f = *New(f.offer)
}

func detailsFailure(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidDateRange):
		return failure.Validation(err.Error(), map[string]string{"check_out": "check_out must be after check_in"}) //nolint:wrapcheck
	case errors.Is(err, pricing.ErrInvalidGuests):
		return failure.Validation(err.Error(), map[string]string{"guests": "guests must be at least 1"}) //nolint:wrapcheck
	case errors.Is(err, pricing.ErrInvalidBasePrice), errors.Is(err, pricing.ErrOverflow):
		return failure.BadRequest(err) //nolint:wrapcheck
	default:
		return fmt.Errorf("price booking: %w", err)
	}
}
