package payment

import (
	"context"
	crand "crypto/rand"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"taghazout/config"
)

// Observer receives the outcome of every attempt; the metrics package satisfies it.
type Observer interface {
	ObservePayment(outcome string)
}

const (
	OutcomeApproved    = "approved"
	OutcomeDeclined    = "declined"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Retrying retries transient failures of the wrapped gateway with jittered
// exponential backoff. Declines are returned immediately.
type Retrying struct {
	next       Gateway
	maxRetries int
	baseWait   time.Duration
	timeout    time.Duration
	observer   Observer
}

func NewRetrying(next Gateway, cfg *config.Config, observer Observer) *Retrying {
	return &Retrying{
		next:       next,
		maxRetries: cfg.Payment.MaxRetries,
		baseWait:   time.Duration(cfg.Payment.RetryWaitMS) * time.Millisecond,
		timeout:    time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
		observer:   observer,
	}
}

func (r *Retrying) Charge(ctx context.Context, charge Charge) (Receipt, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		receipt, err := r.next.Charge(ctx, charge)
		r.observe(err)

		if err == nil {
			receipt.Attempts = attempt + 1

			return receipt, nil
		}

		lastErr = err

		if !IsTransient(err) || attempt == r.maxRetries {
			break
		}

		wait := backoff(r.baseWait, attempt)
		log.Warn().Err(err).Str("reference", charge.Reference).Int("attempt", attempt+1).Dur("wait", wait).Msg("payment attempt failed, retrying")

		if !sleepCtx(ctx, wait) {
			return Receipt{}, errors.Join(ErrUnavailable, ctx.Err())
		}
	}

	return Receipt{}, lastErr
}

func (r *Retrying) observe(err error) {
	if r.observer == nil {
		return
	}

	switch {
	case err == nil:
		r.observer.ObservePayment(OutcomeApproved)
	case errors.Is(err, ErrDeclined):
		r.observer.ObservePayment(OutcomeDeclined)
	case IsTransient(err):
		r.observer.ObservePayment(OutcomeUnavailable)
	default:
		r.observer.ObservePayment(OutcomeError)
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles base each attempt and adds up to 50% jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	wait := base << attempt

	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return wait
	}

	return wait + time.Duration(float64(b[0])/255.0*0.5*float64(wait))
}
