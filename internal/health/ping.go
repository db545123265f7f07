package health

import "context"

// HealthPinger is implemented by record stores that can answer a cheap
// liveness probe. HealthPing returns nil when the backend is reachable.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
