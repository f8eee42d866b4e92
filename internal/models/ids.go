package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NextID returns a 50-character key that sorts by creation time: a zero-padded
// millisecond timestamp, a random UUID without dashes, and a 000 suffix.
func NextID() any {
	return fmt.Sprintf("%015d%s000", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Now returns the current time in fractional Unix seconds.
func Now() any {
	return float64(time.Now().UnixMicro()) / 1e6
}
