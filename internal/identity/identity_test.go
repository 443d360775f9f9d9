package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInstanceID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewInstanceID()
		assert.False(t, seen[id], "duplicate id: %s", id)
		seen[id] = true

		// uuid (5 dash-separated groups) plus the timestamp suffix
		parts := strings.Split(id, "-")
		assert.Len(t, parts, 6)
		assert.NotEmpty(t, parts[5])
	}
}
