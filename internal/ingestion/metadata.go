package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes a loaded résumé file
type Metadata struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates Metadata for cleaned text loaded at the given time
func NewMetadata(filename string, format Format, cleaned string, now time.Time) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    format,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(cleaned),
		Chars:     len([]rune(cleaned)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
