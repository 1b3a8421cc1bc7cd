package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/treinoapp/backend/internal/telemetry/metrics"
	"github.com/treinoapp/backend/pkg"

	"github.com/go-redis/redis_rate/v9"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := rateLimiter.Allow(
				r.Context(),
				routerName,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				pkg.WriteJSONError(w, "erro interno do servidor", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedReqs.Inc()
			}

			pkg.WriteJSONError(
				w,
				fmt.Sprintf("limite de requisicoes atingido, tente novamente em %.0f segundos", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}
