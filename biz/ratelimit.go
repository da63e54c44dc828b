package biz

import (
	"github.com/vearne/grpcsniff/config"
	"golang.org/x/time/rate"
)

type Limiter interface {
	Allow() bool
}

func NewRateLimit(settings *config.AppSettings) Limiter {
	if settings.RateLimitQPS > 0 {
		value := settings.RateLimitQPS
		return rate.NewLimiter(rate.Limit(value), value)
	}
	return nil
}
