package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/unitycompany/fidelidade-fast/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyUploadCustomer = "upload:customer:%s"
	keyUploadLock     = "upload:lock:%s"

	uploadLockTTL = 30 * time.Second
)

// UploadLimiter throttles invoice uploads per customer and serializes
// concurrent uploads from the same customer. Without Redis configured it is
// disabled and every upload passes.
type UploadLimiter struct {
	enabled bool
	log     *zap.Logger

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

type LimiterParams struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func NewUploadLimiter(p LimiterParams) *UploadLimiter {
	addr := strings.TrimSpace(p.Config.RedisAddr)
	log := p.Log.Named("ratelimit.upload")
	if addr == "" || p.Config.UploadRatePerMinute <= 0 {
		log.Info("upload rate limiting disabled")
		return &UploadLimiter{enabled: false, log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(p.Config.RedisPassword),
	})

	return &UploadLimiter{
		enabled: true,
		log:     log,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    float64(p.Config.UploadRatePerMinute) / 60.0,
		burst:   p.Config.UploadRatePerMinute,
	}
}

func (l *UploadLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the customer may submit another upload. Redis errors
// fail open: a broken limiter must not block invoice processing.
func (l *UploadLimiter) Allow(ctx context.Context, customerID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}

	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyUploadCustomer, strings.TrimSpace(customerID)), l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed, allowing upload",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return &Result{Allowed: true}, nil
	}
	return res, nil
}

// TryLock takes a short exclusive lock for the customer so two simultaneous
// uploads of the same invoice cannot race past the duplicate check.
func (l *UploadLimiter) TryLock(ctx context.Context, customerID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}

	token, ok, err := l.locker.TryLock(ctx, fmt.Sprintf(keyUploadLock, strings.TrimSpace(customerID)), uploadLockTTL)
	if err != nil {
		l.log.Warn("upload lock failed, allowing upload",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return "", true, nil
	}
	return token, ok, nil
}

func (l *UploadLimiter) Unlock(ctx context.Context, customerID, token string) {
	if !l.Enabled() || token == "" {
		return
	}
	if err := l.locker.Release(ctx, fmt.Sprintf(keyUploadLock, strings.TrimSpace(customerID)), token); err != nil {
		l.log.Warn("upload lock release failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
	}
}
