package rating

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/cache"
	"marketplace-be/internal/events"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/order"
	"marketplace-be/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type OrderReader interface {
	GetByID(ctx context.Context, id uint) (*order.Order, error)
}

type ProfileReader interface {
	FindByID(ctx context.Context, id uint) (*user.Profile, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, orderID uint, score int, comment string) (*Rating, error)
	SupplierSummary(ctx context.Context, supplierID uint) (*Summary, error)
}

type Deps struct {
	Repo      Repository
	Orders    OrderReader
	Profiles  ProfileReader
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher events.Publisher
	Metrics   *metrics.Registry
}

type service struct {
	repo      Repository
	orders    OrderReader
	profiles  ProfileReader
	cache     cache.Cache
	ttl       time.Duration
	publisher events.Publisher
	metrics   *metrics.Registry
	group     singleflight.Group
}

func NewService(d Deps) Service {
	s := &service{
		repo:      d.Repo,
		orders:    d.Orders,
		profiles:  d.Profiles,
		cache:     d.Cache,
		ttl:       d.CacheTTL,
		publisher: d.Publisher,
		metrics:   d.Metrics,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry()
	}
	return s
}

func (s *service) Create(ctx context.Context, actor auth.Actor, orderID uint, score int, comment string) (*Rating, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("order_id", orderID),
	)

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsBuyer() || o.BuyerID != actor.ProfileID {
		log.Warn("rating by non-buyer rejected")
		return nil, ErrPermissionDenied
	}
	if o.Status != order.StatusCompleted {
		return nil, ErrOrderNotCompleted
	}
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	rt := &Rating{
		OrderID:    o.ID,
		RaterID:    actor.ProfileID,
		SupplierID: o.SupplierID,
		Score:      score,
		Comment:    comment,
	}
	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}

	if err := s.cache.Del(ctx, cache.SupplierSummaryKey(rt.SupplierID)); err != nil {
		log.Warn("failed to invalidate supplier summary", zap.Error(err))
	}
	s.metrics.Inc("rating.created")
	s.publisher.Publish(ctx, events.New(ctx, events.EventRatingCreated,
		strconv.FormatUint(uint64(rt.OrderID), 10),
		events.RatingPayload{RatingID: rt.ID, OrderID: rt.OrderID, SupplierID: rt.SupplierID, Score: rt.Score},
	))

	log.Info("rating recorded", zap.Uint("rating_id", rt.ID), zap.Int("score", score))
	return rt, nil
}

// SupplierSummary is cache-aside. Concurrent misses for the same supplier
// share one database load.
func (s *service) SupplierSummary(ctx context.Context, supplierID uint) (*Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SupplierSummary"),
		zap.Uint("supplier_id", supplierID),
	)
	key := cache.SupplierSummaryKey(supplierID)

	if sum, ok := s.cached(ctx, key); ok {
		s.metrics.Inc("rating.summary.cache_hit")
		return sum, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// Every waiter shares this load, so it outlives the first caller's cancellation.
		loadCtx := context.WithoutCancel(ctx)
		if sum, ok := s.cached(loadCtx, key); ok {
			return sum, nil
		}

		s.metrics.Inc("rating.summary.cache_miss")
		sum, err := s.load(loadCtx, supplierID)
		if err != nil {
			return nil, err
		}

		b, err := json.Marshal(sum)
		if err == nil {
			err = s.cache.Set(loadCtx, key, b, s.ttl)
		}
		if err != nil {
			log.Warn("failed to cache supplier summary", zap.Error(err))
		}
		return sum, nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("supplier summary loaded", zap.Bool("shared", shared))
	return v.(*Summary), nil
}

func (s *service) cached(ctx context.Context, key string) (*Summary, bool) {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var sum Summary
	if err := json.Unmarshal(b, &sum); err != nil {
		logger.FromCtx(ctx).Warn("discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &sum, true
}

func (s *service) load(ctx context.Context, supplierID uint) (*Summary, error) {
	p, err := s.profiles.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	if p.Kind != auth.KindSupplier {
		return nil, ErrSupplierNotFound
	}

	stats, err := s.repo.Stats(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, supplierID, RecentLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		SupplierID: p.ID,
		Username:   p.Username,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		Average:    stats.Average,
		Count:      stats.Count,
		Recent:     recent,
	}, nil
}
