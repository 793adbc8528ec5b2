package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	now := time.Date(2026, time.October, 17, 8, 0, 0, 0, time.FixedZone("X", 3600))

	m := NewMetadata("jane.pdf", FormatPDF, "Senior Go engineer", now)

	assert.Equal(t, "jane.pdf", m.Filename)
	assert.Equal(t, FormatPDF, m.Format)
	assert.Equal(t, "2026-10-17T07:00:00Z", m.Timestamp)
	assert.Len(t, m.Hash, 64)
	assert.Equal(t, 18, m.Chars)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash("same"), computeHash("same"))
	assert.NotEqual(t, computeHash("one"), computeHash("two"))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", computeHash(""))
}
