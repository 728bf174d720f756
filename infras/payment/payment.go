package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrDeclined is a business rejection and is never retried.
	ErrDeclined = errors.New("payment declined")
	// ErrUnavailable is a transient gateway failure and may be retried.
	ErrUnavailable = errors.New("payment gateway unavailable")
)

// Card carries the payment form fields. Only the last four digits ever leave this package.
type Card struct {
	Holder string `json:"holder" validate:"required,min=2,max=100"`
	Number string `json:"number" validate:"required,min=12,max=23"`
	Expiry string `json:"expiry" validate:"required,max=7"`
	CVC    string `json:"cvc"    validate:"required,numeric,min=3,max=4"`
}

// Last4 returns the trailing four digits of the card number.
func (c Card) Last4() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, c.Number)

	if len(digits) <= 4 {
		return digits
	}

	return digits[len(digits)-4:]
}

type Charge struct {
	Reference string
	Amount    int64
	Currency  string
	Card      Card
}

type Receipt struct {
	Reference     string    `json:"reference"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Last4         string    `json:"last4"`
	Attempts      int       `json:"attempts"`
	ChargedAt     time.Time `json:"charged_at"`
}

type Gateway interface {
	Charge(ctx context.Context, charge Charge) (Receipt, error)
}

// IsTransient reports whether err may succeed when retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
