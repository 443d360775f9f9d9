// Package identity allocates opaque instance identifiers for newly created
// items and units.
package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewInstanceID returns a new instance identifier combining random entropy
// with a monotonic time component. Two calls in the same process never
// collide and cross-process collisions are cryptographically improbable;
// uniqueness is never re-checked against existing inventory contents.
func NewInstanceID() string {
	return fmt.Sprintf("%s-%d", uuid.NewString(), time.Now().UnixNano())
}
