package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/logger"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		ProviderID:  uuid.New(),
		ClientID:    ptr.Ptr(uuid.New()),
		BookingDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		BookingTime: ptr.Ptr(types.MustFromMinutes(9 * 60)),
		Status:      domain.StatusAccepted,
	}
}

func TestBookingStatusChanged(t *testing.T) {
	b := testBooking()
	now := time.Date(2026, 10, 16, 18, 45, 0, 0, time.FixedZone("CEST", 2*3600))

	e := BookingStatusChanged(b, domain.StatusPending, now)

	assert.Equal(t, TypeBookingStatusChanged, e.Type)
	assert.Equal(t, "2026-10-19", e.BookingDate)
	assert.Equal(t, "09:00", e.BookingTime)
	assert.Equal(t, "accepted", e.Status)
	assert.Equal(t, "pending", e.PreviousStatus)
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
	assert.NotEqual(t, uuid.Nil, e.ID)
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{channel: ch, exchange: "bookings", logger: logger.NewNop()}

	event := BookingCreated(testBooking(), time.Now())
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "bookings", ch.exchange)
	assert.Equal(t, TypeBookingCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, event.ID.String(), ch.msg.MessageId)

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, event.BookingID, decoded.BookingID)
	assert.Empty(t, decoded.PreviousStatus)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := &RabbitPublisher{channel: ch, exchange: "bookings", logger: logger.NewNop()}

	err := p.Publish(context.Background(), BookingCreated(testBooking(), time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), BookingEvent{}))
	assert.NoError(t, p.Close())
}
