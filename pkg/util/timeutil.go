package util

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SessionID returns "<prefix>_<unix nanos>_<uuid>". The timestamp keeps ids
// sortable in logs, the uuid suffix keeps concurrent requests apart.
func SessionID(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, at.UnixNano(), uuid.NewString())
}
