package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/reports"
	"github.com/sellerboard/sellerboard-backend/pkg/config"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

// ErrCooldown is returned when a remote summary was requested again before
// the per-store cooldown elapsed and no cached summary exists.
var ErrCooldown = pkgerrors.New(pkgerrors.CodeRateLimit, "summary recently requested, try again shortly")

// Cache is the advisory store behind the service. Satisfied by *redis.Client;
// every call against it is best-effort.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	InsightKey(marketplace, contentHash string) string
	CooldownKey(scope string) string
}

// Projection is the slice of an aggregation pass the summarizer sees. Worst
// and category lists are already truncated for prompt size by the caller.
type Projection struct {
	Marketplace enums.Marketplace          `json:"marketplace"`
	KPI         reports.KPI                `json:"kpi"`
	Categories  []analytics.CategoryRollup `json:"categories"`
	Campaigns   []analytics.CampaignImpact `json:"campaigns"`
	Worst       []analytics.PricedProduct  `json:"worst"`
}

// Insight is one narrative summary, cached or freshly generated.
type Insight struct {
	Summary     string    `json:"summary"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service produces narrative summaries of a store's analytics with an
// advisory cache in front of the remote summarizer.
type Service interface {
	Summarize(ctx context.Context, storeID uuid.UUID, projection Projection) (*Insight, error)
}

type service struct {
	summarizer Summarizer
	cache      Cache
	logg       *logger.Logger
	cacheTTL   time.Duration
	cooldown   time.Duration
}

// NewService wires the insight service. The cache may be nil, in which case
// every call goes straight to the summarizer.
func NewService(summarizer Summarizer, cache Cache, logg *logger.Logger, cfg config.InsightsConfig) (Service, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		summarizer: summarizer,
		cache:      cache,
		logg:       logg,
		cacheTTL:   cfg.CacheTTL,
		cooldown:   cfg.Cooldown,
	}, nil
}

// Summarize returns the cached narrative for identical analytics content, or
// generates a fresh one. Cache and cooldown bookkeeping never fail the call;
// a broken cache only means more remote requests.
func (s *service) Summarize(ctx context.Context, storeID uuid.UUID, projection Projection) (*Insight, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}

	hash, err := projectionHash(projection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash projection")
	}

	var key string
	if s.cache != nil {
		key = s.cache.InsightKey(projection.Marketplace.String(), hash)
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			return &Insight{Summary: cached, Cached: true, GeneratedAt: time.Now().UTC()}, nil
		}

		acquired, err := s.cache.SetNX(ctx, s.cache.CooldownKey(storeID.String()), "1", s.cooldown)
		if err != nil {
			s.logg.Warn(ctx, "insight cooldown check failed: "+err.Error())
		} else if !acquired {
			return nil, ErrCooldown
		}
	}

	prompt, err := buildPrompt(projection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build prompt")
	}

	summary, err := s.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logg.Warn(ctx, "insight cache write failed: "+err.Error())
		}
	}
	return &Insight{Summary: summary, GeneratedAt: time.Now().UTC()}, nil
}

// projectionHash produces the content key: identical analytics yield an
// identical hash regardless of when the summary is requested.
func projectionHash(projection Projection) (string, error) {
	payload, err := json.Marshal(projection)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}

func buildPrompt(projection Projection) (string, error) {
	payload, err := json.MarshalIndent(projection, "", "  ")
	if err != nil {
		return "", err
	}
	return "Store analytics for " + projection.Marketplace.String() + ":\n" + string(payload), nil
}
