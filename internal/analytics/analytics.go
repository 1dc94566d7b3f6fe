// Package analytics keeps lightweight login counters in Redis for the admin
// stats page. Everything here is best-effort: a Redis outage must never fail
// a login.
package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

const (
	keyTotalLogins = "kokpit:logins:total"
	keyDailyLogins = "kokpit:logins:daily:" // + yyyy-mm-dd
	keyLastSeen    = "kokpit:last_seen"

	dailyRetention = 60 * 24 * time.Hour
	writeTimeout   = 2 * time.Second
)

// Recorder writes and reads the counters. A Recorder with no configured
// address is valid and does nothing, so deployments without Redis just lose
// the stats page numbers.
type Recorder struct {
	rdb *redis.Client
}

func NewRecorder() (*Recorder, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process redis configuration: %w", err)
	}

	if config.Addr == "" {
		log.Println("REDIS_ADDR not set, login analytics disabled")
		return &Recorder{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	return &Recorder{rdb: rdb}, nil
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.rdb != nil
}

// RecordLogin bumps the total and per-day counters and stamps the user's
// last-seen time.
func (r *Recorder) RecordLogin(ctx context.Context, userID string) {
	if !r.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now()
	dailyKey := keyDailyLogins + now.Format("2006-01-02")

	pipe := r.rdb.Pipeline()
	pipe.Incr(ctx, keyTotalLogins)
	pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, dailyRetention)
	pipe.HSet(ctx, keyLastSeen, userID, now.Unix())

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Failed to record login analytics for user %s: %v", userID, err)
	}
}

type Stats struct {
	TotalLogins int64 `json:"total_logins"`
	LoginsToday int64 `json:"logins_today"`
	ActiveUsers int64 `json:"active_users"`
}

// Stats reads the counters back for the admin dashboard.
func (r *Recorder) Stats(ctx context.Context) (*Stats, error) {
	if !r.Enabled() {
		return &Stats{}, nil
	}

	dailyKey := keyDailyLogins + time.Now().Format("2006-01-02")

	pipe := r.rdb.Pipeline()
	total := pipe.Get(ctx, keyTotalLogins)
	today := pipe.Get(ctx, dailyKey)
	active := pipe.HLen(ctx, keyLastSeen)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read analytics counters: %w", err)
	}

	stats := &Stats{ActiveUsers: active.Val()}
	stats.TotalLogins, _ = total.Int64()
	stats.LoginsToday, _ = today.Int64()
	return stats, nil
}

func (r *Recorder) HealthCheck(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.rdb.Ping(ctx).Err()
}

func (r *Recorder) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.rdb.Close()
}
