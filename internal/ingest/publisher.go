package ingest

import (
	"context"
	"encoding/json"
	"errors"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	product "github.com/sellerboard/sellerboard-backend/internal/products"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

type messagePublisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) *gcppubsub.PublishResult
}

// Publisher enqueues scraped snapshots onto the ingest topic for the
// scrape worker to apply.
type Publisher struct {
	topic messagePublisher
}

// NewPublisher creates a snapshot publisher for the given topic handle.
func NewPublisher(topic *gcppubsub.Publisher) (*Publisher, error) {
	if topic == nil {
		return nil, errors.New("snapshot topic is required")
	}
	return &Publisher{topic: topic}, nil
}

// Enqueue publishes one snapshot envelope and waits for the server ack, so a
// success response means the message is durably queued.
func (p *Publisher) Enqueue(ctx context.Context, storeID uuid.UUID, snapshot product.SnapshotInput) (string, error) {
	payload, err := json.Marshal(SnapshotMessage{StoreID: storeID, Snapshot: snapshot})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode snapshot message")
	}

	result := p.topic.Publish(ctx, &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"store_id":    storeID.String(),
			"marketplace": snapshot.Marketplace.String(),
		},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish snapshot")
	}
	return id, nil
}
