package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taghazout/config"
	otelMocks "taghazout/infras/otel/mocks"
	"taghazout/infras/payment"
	"taghazout/infras/payment/mocks"
)

type outcomes []string

func (o *outcomes) ObservePayment(outcome string) { *o = append(*o, outcome) }

func retryConfig(retries int) *config.Config {
	cfg := &config.Config{}
	cfg.Payment.MaxRetries = retries
	cfg.Payment.RetryWaitMS = 1
	cfg.Payment.TimeoutSeconds = 5

	return cfg
}

func TestCard_Last4(t *testing.T) {
	assert.Equal(t, "4242", payment.Card{Number: "4242 4242 4242 4242"}.Last4())
	assert.Equal(t, "12", payment.Card{Number: "12"}.Last4())
}

func TestSimulated_Charge(t *testing.T) {
	gateway := payment.NewSimulated(&config.Config{}, otelMocks.NewOtel())
	ctx := context.Background()

	receipt, err := gateway.Charge(ctx, payment.Charge{Reference: "bk-1", Amount: 9000, Currency: "MAD", Card: payment.Card{Number: "4242424242424242"}})
	require.NoError(t, err)
	assert.Equal(t, "4242", receipt.Last4)
	assert.Equal(t, int64(9000), receipt.Amount)
	assert.NotEmpty(t, receipt.TransactionID)

	_, err = gateway.Charge(ctx, payment.Charge{Reference: "bk-2", Card: payment.Card{Number: payment.CardDeclined}})
	assert.ErrorIs(t, err, payment.ErrDeclined)

	_, err = gateway.Charge(ctx, payment.Charge{Reference: "bk-3", Card: payment.Card{Number: payment.CardUnavailable}})
	assert.ErrorIs(t, err, payment.ErrUnavailable)
	assert.True(t, payment.IsTransient(err))
}

func TestRetrying_RecoversFromTransientFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)

	gomock.InOrder(
		next.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, payment.ErrUnavailable),
		next.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{Reference: "bk-1"}, nil),
	)

	var seen outcomes
	receipt, err := payment.NewRetrying(next, retryConfig(2), &seen).Charge(context.Background(), payment.Charge{Reference: "bk-1"})

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Attempts)
	assert.Equal(t, outcomes{payment.OutcomeUnavailable, payment.OutcomeApproved}, seen)
}

func TestRetrying_DeclineIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)

	next.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, payment.ErrDeclined).Times(1)

	_, err := payment.NewRetrying(next, retryConfig(3), nil).Charge(context.Background(), payment.Charge{})

	assert.ErrorIs(t, err, payment.ErrDeclined)
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)

	next.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, payment.ErrUnavailable).Times(3)

	_, err := payment.NewRetrying(next, retryConfig(2), nil).Charge(context.Background(), payment.Charge{})

	assert.ErrorIs(t, err, payment.ErrUnavailable)
}

func TestRetrying_PermanentErrorStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)

	next.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, errors.New("card number malformed")).Times(1)

	var seen outcomes
	_, err := payment.NewRetrying(next, retryConfig(2), &seen).Charge(context.Background(), payment.Charge{})

	assert.Error(t, err)
	assert.Equal(t, outcomes{payment.OutcomeError}, seen)
}

func TestRetrying_CancelledWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)

	cfg := retryConfig(5)
	cfg.Payment.RetryWaitMS = int(time.Minute / time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	next.EXPECT().Charge(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, payment.Charge) (payment.Receipt, error) {
		cancel()

		return payment.Receipt{}, payment.ErrUnavailable
	})

	_, err := payment.NewRetrying(next, cfg, nil).Charge(ctx, payment.Charge{})

	assert.ErrorIs(t, err, payment.ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
