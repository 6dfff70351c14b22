package repositories

import "context"

// HealthChecker reports whether the backing store answers
type HealthChecker interface {
	Ping(ctx context.Context) error
}
