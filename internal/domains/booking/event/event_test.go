package event

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"taghazout/infras/kafka"
	"taghazout/infras/otel/mocks"
	"taghazout/internal/domains/booking/model"
	"taghazout/shared/i18n"
)

func newNotifier(t *testing.T) (*Notifier, *[]Confirmation) {
	t.Helper()

	sent := []Confirmation{}
	notifier := NewNotifier(i18n.MustTranslator(), mocks.NewOtel())
	notifier.sent = func(c Confirmation) { sent = append(sent, c) }

	return notifier, &sent
}

func encode(t *testing.T, event model.CreatedEvent) kafkaGo.Message {
	t.Helper()

	message := kafka.Message{Key: event.ID, Value: event}

	msg, err := message.ToKafkaMessage()
	assert.NoError(t, err)

	return msg
}

func TestNotifier_Handle(t *testing.T) {
	tests := []struct {
		name        string
		event       model.CreatedEvent
		wantSubject string
		wantDir     string
		wantSummary string
	}{
		{
			name: "french stay",
			event: model.CreatedEvent{
				ID: "bk-1", GuestEmail: "amina@example.com", ItemTitle: "Maison du surf",
				Guests: 2, Nights: 3, Total: 195000, Currency: "MAD", Lang: "fr",
			},
			wantSubject: "Votre réservation est confirmée",
			wantDir:     "ltr",
			wantSummary: "Maison du surf | Voyageurs x2 | Total 1950.00 MAD | 3 nuits",
		},
		{
			name: "arabic package",
			event: model.CreatedEvent{
				ID: "bk-2", GuestEmail: "youssef@example.com", ItemTitle: "Surf week",
				Guests: 1, Nights: 1, Total: 450000, Currency: "MAD", Lang: "ar",
			},
			wantSubject: "تم تأكيد حجزك",
			wantDir:     "rtl",
			wantSummary: "Surf week | الضيوف x1 | المجموع 4500.00 MAD",
		},
		{
			name: "unknown language falls back to english",
			event: model.CreatedEvent{
				ID: "bk-3", GuestEmail: "sam@example.com", ItemTitle: "Board rental",
				Guests: 1, Nights: 1, Total: 15005, Currency: "MAD", Lang: "de",
			},
			wantSubject: "Your booking is confirmed",
			wantDir:     "ltr",
			wantSummary: "Board rental | Guests x1 | Total 150.05 MAD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, sent := newNotifier(t)

			err := notifier.Handle(context.Background(), encode(t, tt.event))

			assert.NoError(t, err)
			assert.Len(t, *sent, 1)

			confirmation := (*sent)[0]
			assert.Equal(t, tt.event.ID, confirmation.BookingID)
			assert.Equal(t, tt.event.GuestEmail, confirmation.To)
			assert.Equal(t, tt.wantSubject, confirmation.Subject)
			assert.Equal(t, tt.wantDir, confirmation.Dir)
			assert.Equal(t, tt.wantSummary, confirmation.Summary)
		})
	}
}

func TestNotifier_HandleRejectsBadPayloads(t *testing.T) {
	notifier, sent := newNotifier(t)

	err := notifier.Handle(context.Background(), kafkaGo.Message{Key: []byte("bk-x"), Value: []byte("{not json")})
	assert.Error(t, err)

	err = notifier.Handle(context.Background(), encode(t, model.CreatedEvent{ID: "bk-4"}))
	assert.ErrorContains(t, err, "incomplete booking event")

	assert.Empty(t, *sent)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00 MAD", formatAmount(0, "MAD"))
	assert.Equal(t, "12.05 EUR", formatAmount(1205, "EUR"))
	assert.Equal(t, "-3.50 MAD", formatAmount(-350, "MAD"))
}
