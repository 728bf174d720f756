package flow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taghazout/infras/payment"
	"taghazout/infras/payment/mocks"
	"taghazout/internal/domains/booking/flow"
	"taghazout/shared/failure"
)

func ptr[T any](v T) *T { return &v }

func date(day int) *time.Time {
	return ptr(time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC))
}

func offer() flow.Offer {
	return flow.Offer{ItemType: "listing", ItemID: "lst-1", UnitPrice: 12000, Currency: "MAD", Capacity: ptr(4)}
}

func validDetails() flow.Details {
	return flow.Details{
		GuestName:  "Amina",
		GuestEmail: "amina@example.com",
		CheckIn:    date(1),
		CheckOut:   date(6),
		Guests:     4,
	}
}

var validCard = payment.Card{Holder: "Amina B", Number: "4242424242424242", Expiry: "12/29", CVC: "123"}

func TestFlow_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)

	f := flow.New(offer())
	assert.Equal(t, flow.StepDetails, f.Step())
	assert.NotEmpty(t, f.Reference())

	require.NoError(t, f.SubmitDetails(validDetails()))
	assert.Equal(t, flow.StepPayment, f.Step())
	assert.Equal(t, 5, f.Quote().Nights)
	assert.Equal(t, int64(240000), f.Quote().Total)

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, charge payment.Charge) (payment.Receipt, error) {
		assert.Equal(t, int64(240000), charge.Amount)
		assert.Equal(t, f.Reference(), charge.Reference)

		return payment.Receipt{Reference: charge.Reference, Amount: charge.Amount, Last4: "4242"}, nil
	})

	require.NoError(t, f.SubmitPayment(context.Background(), gateway, validCard))
	assert.True(t, f.Confirmed())
	assert.Equal(t, "4242", f.Receipt().Last4)
	assert.NoError(t, f.LastError())
}

func TestFlow_SubmitDetailsValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *flow.Details)
		wantKey string
	}{
		{name: "short name", mutate: func(d *flow.Details) { d.GuestName = "A" }, wantKey: "guest_name"},
		{name: "invalid email", mutate: func(d *flow.Details) { d.GuestEmail = "not-an-email" }, wantKey: "guest_email"},
		{name: "no guests", mutate: func(d *flow.Details) { d.Guests = 0 }, wantKey: "guests"},
		{name: "over capacity", mutate: func(d *flow.Details) { d.Guests = 5 }, wantKey: "guests"},
		{name: "check-out before check-in", mutate: func(d *flow.Details) { d.CheckOut = date(1) }, wantKey: "check_out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flow.New(offer())

			details := validDetails()
			tt.mutate(&details)

			err := f.SubmitDetails(details)

			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Contains(t, failure.GetFields(err), tt.wantKey)
			assert.Equal(t, flow.StepDetails, f.Step())
		})
	}
}

func TestFlow_NoDatesPricesOneNight(t *testing.T) {
	f := flow.New(flow.Offer{UnitPrice: 4500, Currency: "MAD"})

	details := validDetails()
	details.CheckIn, details.CheckOut = nil, nil
	details.Guests = 2

	require.NoError(t, f.SubmitDetails(details))
	assert.Equal(t, 1, f.Quote().Nights)
	assert.Equal(t, int64(9000), f.Quote().Total)
}

func TestFlow_PackageOfferMultipliesNightsAndGuests(t *testing.T) {
	f := flow.New(flow.Offer{ItemType: "package", UnitPrice: 350000, Currency: "MAD"})

	require.NoError(t, f.SubmitDetails(validDetails()))
	assert.Equal(t, 5, f.Quote().Nights)
	assert.Equal(t, int64(7000000), f.Quote().Total)
	assert.Equal(t, date(1), f.Details().CheckIn)

	reversed := validDetails()
	reversed.CheckIn, reversed.CheckOut = date(6), date(1)

	g := flow.New(flow.Offer{ItemType: "package", UnitPrice: 350000, Currency: "MAD"})
	err := g.SubmitDetails(reversed)
	require.Error(t, err)
	assert.Contains(t, failure.GetFields(err), "check_out")
	assert.Equal(t, flow.StepDetails, g.Step())
}

func TestFlow_GuestCountIsBounded(t *testing.T) {
	f := flow.New(flow.Offer{ItemType: "listing", ItemID: "lst-board", UnitPrice: 9000, Currency: "MAD"})

	details := validDetails()
	details.Guests = 51

	err := f.SubmitDetails(details)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, failure.GetFields(err), "guests")
	assert.Equal(t, flow.StepDetails, f.Step())
}

func TestPrice_RejectsOverflowingGuestCount(t *testing.T) {
	quote, err := flow.Price(flow.Offer{UnitPrice: 1}, date(1), date(4), 1<<62)

	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Zero(t, quote)
}

func TestFlow_PaymentFailureStaysOnPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)

	f := flow.New(offer())
	require.NoError(t, f.SubmitDetails(validDetails()))

	gomock.InOrder(
		gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, payment.ErrDeclined),
		gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{Last4: "4444"}, nil),
	)

	err := f.SubmitPayment(context.Background(), gateway, validCard)
	require.ErrorIs(t, err, payment.ErrDeclined)
	assert.Equal(t, flow.StepPayment, f.Step())
	assert.ErrorIs(t, f.LastError(), payment.ErrDeclined)

	require.NoError(t, f.SubmitPayment(context.Background(), gateway, validCard))
	assert.True(t, f.Confirmed())
	assert.Equal(t, 2, f.PaymentAttempts())
	assert.NoError(t, f.LastError())
}

func TestFlow_InvalidCardIsNotCharged(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)

	f := flow.New(offer())
	require.NoError(t, f.SubmitDetails(validDetails()))

	err := f.SubmitPayment(context.Background(), gateway, payment.Card{Holder: "Amina"})

	assert.Equal(t, 400, failure.GetCode(err))
	assert.Equal(t, flow.StepPayment, f.Step())
	assert.Zero(t, f.PaymentAttempts())
}

func TestFlow_Transitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)

	f := flow.New(offer())

	assert.ErrorIs(t, f.SubmitPayment(context.Background(), gateway, validCard), flow.ErrInvalidTransition)
	assert.ErrorIs(t, f.Back(), flow.ErrInvalidTransition)

	require.NoError(t, f.SubmitDetails(validDetails()))
	assert.ErrorIs(t, f.SubmitDetails(validDetails()), flow.ErrInvalidTransition)

	require.NoError(t, f.Back())
	assert.Equal(t, flow.StepDetails, f.Step())
	assert.Equal(t, "Amina", f.Details().GuestName)

	require.NoError(t, f.SubmitDetails(validDetails()))

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(payment.Receipt{}, nil)
	require.NoError(t, f.SubmitPayment(context.Background(), gateway, validCard))

	assert.ErrorIs(t, f.Back(), flow.ErrInvalidTransition)
	assert.ErrorIs(t, f.SubmitDetails(validDetails()), flow.ErrInvalidTransition)

	reference := f.Reference()
	f.Reset()

	assert.Equal(t, flow.StepDetails, f.Step())
	assert.NotEqual(t, reference, f.Reference())
	assert.Zero(t, f.Quote())
	assert.Equal(t, offer(), f.Offer())
}
