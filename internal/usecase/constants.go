package usecase

import "time"

const (
	// SnapshotTTL is how long a plan's due/paid snapshot stays cached.
	// Every ledger mutation invalidates it eagerly; the TTL only bounds
	// staleness when an invalidation is lost.
	SnapshotTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

// snapshotKey is the cache key for a plan's due/paid snapshot.
func snapshotKey(planID string) string {
	return "snapshot:plan:" + planID
}
