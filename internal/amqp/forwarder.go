package amqp

import (
	"context"
	"sync/atomic"

	"crediario/internal/log"
	"crediario/internal/store"
)

// ChangePublisher is satisfied by Client.
type ChangePublisher interface {
	PublishChange(ctx context.Context, msg *ChangeMessage) error
}

// Forwarder relays store events to a publisher off the saving goroutine.
// When the buffer is full new events are dropped and counted.
type Forwarder struct {
	pub     ChangePublisher
	logger  *log.Logger
	queue   chan *ChangeMessage
	dropped atomic.Int64
}

func NewForwarder(pub ChangePublisher, logger *log.Logger, buffer int) *Forwarder {
	if buffer < 1 {
		buffer = 1
	}
	return &Forwarder{
		pub:    pub,
		logger: logger.WithComponent(log.ComponentAMQP),
		queue:  make(chan *ChangeMessage, buffer),
	}
}

// Attach subscribes the forwarder to every slot on bus and returns the
// unsubscribe func.
func (f *Forwarder) Attach(bus *store.Bus) func() {
	return bus.Subscribe(store.AllKeys, f.enqueue)
}

func (f *Forwarder) enqueue(e store.Event) {
	msg := NewChangeMessage(e.Key, e.Value)
	select {
	case f.queue <- msg:
	default:
		f.dropped.Add(1)
		f.logger.Warn("Change queue full, dropping notification", log.FieldKey, e.Key)
	}
}

// Run publishes queued changes until ctx is done.
func (f *Forwarder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-f.queue:
			if err := f.pub.PublishChange(ctx, msg); err != nil {
				f.logger.ErrorContext(ctx, "Failed to publish ledger change",
					log.NewFields().WithKey(msg.Key).WithOperation(log.OpPublish).WithError(err).ToSlice()...)
			}
		}
	}
}

// Dropped returns how many notifications were discarded.
func (f *Forwarder) Dropped() int64 {
	return f.dropped.Load()
}
