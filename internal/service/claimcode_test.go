package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateClaimCode(t *testing.T) {
	format := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateClaimCode()
		require.NoError(t, err)
		assert.Regexp(t, format, code)
		seen[code] = struct{}{}
	}

	// 200 draws from a 36^6 space should not collide.
	assert.Len(t, seen, 200)
}
