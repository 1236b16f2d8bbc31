package pnr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Format(t *testing.T) {
	ref := Generate()
	assert.Len(t, ref, Length)
	assert.Regexp(t, "^[0-9A-F]{10}$", ref)
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		ref := Generate()
		assert.False(t, seen[ref], "duplicate PNR generated: %s", ref)
		seen[ref] = true
	}
}
