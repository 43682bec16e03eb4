package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/givehope/internal/config"
)

const (
	keyDonationClient = "donation:create:client:%s"
	keyVerifyClient   = "payment:verify:client:%s"
)

// PublicIntakeLimiter throttles the unauthenticated donation and
// verification endpoints per client address.
type PublicIntakeLimiter struct {
	enabled bool

	bucket *TokenBucket

	donationRate  float64
	donationBurst int
	verifyRate    float64
	verifyBurst   int
}

func NewPublicIntakeLimiter(cfg config.Config) (*PublicIntakeLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.DonationRate <= 0 || limitCfg.DonationBurst <= 0 {
		return nil, errors.New("donation rate limit must be positive")
	}
	if limitCfg.VerifyRate <= 0 || limitCfg.VerifyBurst <= 0 {
		return nil, errors.New("verify rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &PublicIntakeLimiter{
		enabled:       true,
		bucket:        NewTokenBucket(client),
		donationRate:  limitCfg.DonationRate,
		donationBurst: limitCfg.DonationBurst,
		verifyRate:    limitCfg.VerifyRate,
		verifyBurst:   limitCfg.VerifyBurst,
	}, nil
}

func (l *PublicIntakeLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *PublicIntakeLimiter) AllowDonation(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyDonationClient, strings.TrimSpace(clientIP)), l.donationRate, l.donationBurst)
}

func (l *PublicIntakeLimiter) AllowVerify(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyVerifyClient, strings.TrimSpace(clientIP)), l.verifyRate, l.verifyBurst)
}
