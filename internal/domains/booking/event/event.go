package event

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"taghazout/infras/kafka"
	"taghazout/infras/otel"
	"taghazout/internal/domains/booking/model"
	"taghazout/shared/constant"
	"taghazout/shared/i18n"
)

const keyConfirmed = "booking.confirmed"

// Confirmation is the guest-facing notice derived from a booking.created event.
type Confirmation struct {
	BookingID string
	To        string
	Subject   string
	Lang      string
	Dir       string
	Summary   string
}

// Notifier consumes booking.created events and emits guest confirmations in the
// language the booking was made in.
type Notifier struct {
	translator *i18n.Translator
	otel       otel.Otel
	sent       func(Confirmation)
}

func NewNotifier(translator *i18n.Translator, otel otel.Otel) *Notifier {
	return &Notifier{
		translator: translator,
		otel:       otel,
		sent:       logConfirmation,
	}
}

// Handle is a kafka.Handler for the booking.created topic.
func (n *Notifier) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	_, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Created")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[model.CreatedEvent](message)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if event.ID == "" || event.GuestEmail == "" {
		return fmt.Errorf("incomplete booking event (key %q)", string(message.Key))
	}

	scope.SetAttribute("booking_id", event.ID)

	n.sent(n.Confirmation(event))

	return nil
}

func (n *Notifier) Confirmation(event model.CreatedEvent) Confirmation {
	locale := i18n.NewLocale(event.Lang)

	summary := fmt.Sprintf("%s | %s x%d | %s %s",
		event.ItemTitle,
		n.translator.Translate("booking.fields.guests", locale.Lang), event.Guests,
		n.translator.Translate("booking.total", locale.Lang), formatAmount(event.Total, event.Currency),
	)

	if event.Nights > 1 {
		summary += fmt.Sprintf(" | %d %s", event.Nights, n.translator.Translate("booking.nights", locale.Lang))
	}

	return Confirmation{
		BookingID: event.ID,
		To:        event.GuestEmail,
		Subject:   n.translator.Translate(keyConfirmed, locale.Lang),
		Lang:      locale.Lang,
		Dir:       locale.Dir,
		Summary:   summary,
	}
}

// formatAmount renders minor units with two decimals.
func formatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign, minor = "-", -minor
	}

	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}

func logConfirmation(c Confirmation) {
	log.Info().
		Str("booking_id", c.BookingID).
		Str("to", c.To).
		Str("lang", c.Lang).
		Str("dir", c.Dir).
		Str("subject", c.Subject).
		Str("summary", c.Summary).
		Msg("Booking confirmation sent")
}
