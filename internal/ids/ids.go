// Package ids provides identifier generators for participants and groups.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on every call.
type Generator func() string

// UUID generates random (version 4) UUIDs.
func UUID() string {
	return uuid.New().String()
}

// Sequence returns a deterministic generator producing prefix-1, prefix-2, ...
// It is safe for concurrent use.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
