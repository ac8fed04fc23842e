package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	product "github.com/sellerboard/sellerboard-backend/internal/products"
	"github.com/sellerboard/sellerboard-backend/internal/stores"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
	"github.com/sellerboard/sellerboard-backend/pkg/metrics"
)

const consumerName = "snapshot-ingest"

// snapshotIdempotencyTTL bounds how long a processed message ID is remembered.
const snapshotIdempotencyTTL = 24 * time.Hour

// SnapshotMessage is the envelope the browser extension's relay publishes for
// each scraped listing.
type SnapshotMessage struct {
	StoreID  uuid.UUID             `json:"store_id"`
	Snapshot product.SnapshotInput `json:"snapshot"`
}

type idempotencyStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	IdempotencyKey(scope, id string) string
}

// Consumer applies scraped snapshots from Pub/Sub through the product
// service, deduplicating on the message ID.
type Consumer struct {
	subscription *gcppubsub.Subscriber
	products     product.Service
	stores       stores.Service
	store        idempotencyStore
	logg         *logger.Logger
	metrics      *metrics.IngestMetrics
}

// NewConsumer creates a snapshot consumer. The stores service and metrics
// may be nil.
func NewConsumer(subscription *gcppubsub.Subscriber, products product.Service, storesSvc stores.Service, store idempotencyStore, logg *logger.Logger, ingestMetrics *metrics.IngestMetrics) (*Consumer, error) {
	if subscription == nil {
		return nil, errors.New("snapshot subscription is required")
	}
	if products == nil {
		return nil, errors.New("product service is required")
	}
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{
		subscription: subscription,
		products:     products,
		stores:       storesSvc,
		store:        store,
		logg:         logg,
		metrics:      ingestMetrics,
	}, nil
}

type processResult struct {
	nack bool
}

// Run consumes snapshot messages until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if c.process(innerCtx, msg.ID, msg.Data).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (c *Consumer) process(ctx context.Context, messageID string, data []byte) processResult {
	started := time.Now()
	logCtx := c.logg.WithField(ctx, "message_id", messageID)

	var message SnapshotMessage
	if err := json.Unmarshal(data, &message); err != nil {
		// a malformed message never becomes valid; drop it
		c.logg.Warn(logCtx, "invalid snapshot message: "+err.Error())
		return processResult{}
	}
	marketplace := message.Snapshot.Marketplace.String()
	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"store_id":    message.StoreID.String(),
		"marketplace": marketplace,
		"barcode":     message.Snapshot.Barcode,
	})

	key := c.store.IdempotencyKey(consumerName, messageID)
	fresh, err := c.store.SetNX(logCtx, key, "1", snapshotIdempotencyTTL)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if !fresh {
		c.logg.Info(logCtx, "snapshot already processed")
		c.metrics.IncDuplicate(marketplace)
		return processResult{}
	}

	if _, err := c.products.ApplySnapshot(logCtx, message.StoreID, message.Snapshot); err != nil {
		c.metrics.IncFailure(marketplace)

		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
			// redelivery cannot fix a rejected snapshot
			c.logg.Warn(logCtx, "snapshot rejected: "+typed.Message())
			return processResult{}
		}

		c.logg.Error(logCtx, "apply snapshot failed", err)
		_ = c.store.Del(logCtx, key)
		return processResult{nack: true}
	}

	if c.stores != nil {
		if err := c.stores.MarkSynced(logCtx, message.StoreID, time.Now().UTC()); err != nil {
			c.logg.Warn(logCtx, "mark store synced failed: "+err.Error())
		}
	}

	c.metrics.IncSuccess(marketplace)
	c.metrics.ObserveDuration(marketplace, time.Since(started))
	c.logg.Info(logCtx, "snapshot applied")
	return processResult{}
}
