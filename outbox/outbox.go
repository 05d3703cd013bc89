package outbox

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voguemanic/voguemanic-backend/metrics"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface a transfer needs. The missing-listing
// case is not an error: most purchased items have never been resold.
type Store interface {
	DeleteResale(ctx context.Context, productID primitive.ObjectID) error
	InsertResale(ctx context.Context, p models.ResaleProduct) error
}

// ResaleTransfer moves ownership of one purchased line item: any existing
// resale listing for the product is removed and a fresh "owned, not listed"
// record is written for the buyer.
type ResaleTransfer struct {
	ID         uuid.UUID
	BuyerEmail string
	Item       models.OrderItem
	Attempts   int
	EnqueuedAt time.Time
}

type Stats struct {
	Enqueued  int64 `json:"enqueued"`
	Processed int64 `json:"processed"`
	Retried   int64 `json:"retried"`
	Parked    int64 `json:"parked"`
}

// Outbox delivers resale transfers at least once. Order placement enqueues
// and returns; a single worker goroutine applies each transfer, retrying
// with backoff before parking the event for inspection.
type Outbox struct {
	store       Store
	events      chan ResaleTransfer
	done        chan struct{}
	wg          sync.WaitGroup
	maxAttempts int
	backoff     time.Duration

	mu     sync.Mutex
	stats  Stats
	parked []ResaleTransfer
}

var ErrFull = errors.New("outbox buffer full")
var ErrStopped = errors.New("outbox stopped")

func New(store Store, buffer int) *Outbox {
	if buffer <= 0 {
		buffer = 256
	}
	return &Outbox{
		store:       store,
		events:      make(chan ResaleTransfer, buffer),
		done:        make(chan struct{}),
		maxAttempts: 5,
		backoff:     2 * time.Second,
	}
}

func (o *Outbox) Start() {
	o.wg.Add(1)
	go o.run()
}

// Enqueue never blocks the caller. A full buffer is reported so the handler
// can log it; the order itself is already persisted at that point.
func (o *Outbox) Enqueue(buyerEmail string, item models.OrderItem) (uuid.UUID, error) {
	ev := ResaleTransfer{
		ID:         uuid.New(),
		BuyerEmail: buyerEmail,
		Item:       item,
		EnqueuedAt: time.Now(),
	}

	select {
	case <-o.done:
		return uuid.Nil, ErrStopped
	default:
	}

	select {
	case o.events <- ev:
		o.mu.Lock()
		o.stats.Enqueued++
		o.mu.Unlock()
		return ev.ID, nil
	default:
		return uuid.Nil, ErrFull
	}
}

// Stop signals the worker and waits for it to finish the event in flight
// and drain whatever is already buffered. Callers must stop producing
// first: the server shuts its listener down before calling Stop, so no
// handler can race an Enqueue against the drain.
func (o *Outbox) Stop() {
	close(o.done)
	o.wg.Wait()
}

func (o *Outbox) GetStats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// ParkedEvents returns a copy of the transfers that exhausted their retries.
func (o *Outbox) ParkedEvents() []ResaleTransfer {
	o.mu.Lock()
	defer o.mu.Unlock()
	events := make([]ResaleTransfer, len(o.parked))
	copy(events, o.parked)
	return events
}

func (o *Outbox) run() {
	defer o.wg.Done()
	for {
		select {
		case ev := <-o.events:
			o.deliver(ev)
		case <-o.done:
			// Drain the buffer before exiting.
			for {
				select {
				case ev := <-o.events:
					o.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (o *Outbox) deliver(ev ResaleTransfer) {
	for {
		ev.Attempts++
		err := o.apply(ev)
		if err == nil {
			metrics.ResaleTransfers.Inc()
			o.mu.Lock()
			o.stats.Processed++
			o.mu.Unlock()
			return
		}

		log.Printf("outbox: transfer %s attempt %d failed: %v", ev.ID, ev.Attempts, err)

		if ev.Attempts >= o.maxAttempts {
			metrics.OutboxFailures.Inc()
			o.mu.Lock()
			o.stats.Parked++
			o.parked = append(o.parked, ev)
			o.mu.Unlock()
			return
		}

		metrics.OutboxRetries.Inc()
		o.mu.Lock()
		o.stats.Retried++
		o.mu.Unlock()

		select {
		case <-time.After(o.backoff):
		case <-o.done:
			// Shutting down: one last immediate attempt happens on the
			// next loop iteration before the event would be parked.
		}
	}
}

// apply performs the two writes of a transfer. They are not transactional;
// a crash between them can drop a stale listing without writing the new
// owner, which a later retry of the same event repairs.
func (o *Outbox) apply(ev ResaleTransfer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := o.store.DeleteResale(ctx, ev.Item.ProductID); err != nil {
		return err
	}

	now := time.Now()
	return o.store.InsertResale(ctx, models.ResaleProduct{
		ID:           ev.Item.ProductID,
		Name:         ev.Item.Name,
		Description:  ev.Item.Description,
		Price:        ev.Item.Price,
		ShippingCost: ev.Item.ShippingCost,
		Category:     ev.Item.Category,
		ImageURL:     ev.Item.ImageURL,
		UserEmail:    ev.BuyerEmail,
		IsResold:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
