package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/shared/constant"
	"taghazout/shared/timezone"
)

// Test card numbers understood by the simulated gateway.
const (
	CardDeclined    = "4000000000000002"
	CardUnavailable = "4000000000000119"
)

// Simulated is the mock gateway used until a real processor is wired in. It
// approves every card except the documented test numbers.
type Simulated struct {
	lag  time.Duration
	otel otel.Otel
}

func NewSimulated(cfg *config.Config, ot otel.Otel) *Simulated {
	return &Simulated{
		lag:  time.Duration(cfg.Payment.SimulatedLagMS) * time.Millisecond,
		otel: ot,
	}
}

// New returns the simulated gateway behind bounded retries.
func New(cfg *config.Config, ot otel.Otel, observer Observer) Gateway {
	return NewRetrying(NewSimulated(cfg, ot), cfg, observer)
}

func (g *Simulated) Charge(ctx context.Context, charge Charge) (receipt Receipt, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Charge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"payment.reference": charge.Reference,
		"payment.amount":    charge.Amount,
		"payment.last4":     charge.Card.Last4(),
	})

	if g.lag > 0 {
		select {
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("charge %s: %w", charge.Reference, ctx.Err())
		case <-time.After(g.lag):
		}
	}

	switch charge.Card.Number {
	case CardDeclined:
		log.Info().Str("reference", charge.Reference).Msg("simulated gateway declined card")

		return Receipt{}, fmt.Errorf("charge %s: %w", charge.Reference, ErrDeclined)
	case CardUnavailable:
		return Receipt{}, fmt.Errorf("charge %s: %w", charge.Reference, ErrUnavailable)
	}

	return Receipt{
		Reference:     charge.Reference,
		TransactionID: "sim_" + uuid.NewString(),
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		Last4:         charge.Card.Last4(),
		Attempts:      1,
		ChargedAt:     timezone.Now(),
	}, nil
}
