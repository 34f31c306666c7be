package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now returns the current UTC time formatted as a platform-compatible
// timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// newID generates an opaque globally-unique identifier.
func newID() string {
	return uuid.NewString()
}

// DeriveAPIName normalizes a display label into an API name: lowercased,
// runs of non-alphanumeric characters collapsed to single underscores,
// leading/trailing underscores trimmed. API names are compared
// case-insensitively; lowercasing here makes equality comparison direct.
func DeriveAPIName(label string) string {
	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// encodeOptions serializes enum options for storage. Nil encodes as an empty
// list so decoding round-trips without null handling.
func encodeOptions(opts []string) (string, error) {
	if opts == nil {
		opts = []string{}
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("marshal options: %w", err)
	}
	return string(data), nil
}

func decodeOptions(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	if len(opts) == 0 {
		return nil, nil
	}
	return opts, nil
}

// pairKey returns the unordered endpoint pair in canonical (lo, hi) order
// used for association duplicate detection.
func pairKey(a, b string) (lo, hi string) {
	if a <= b {
		return a, b
	}
	return b, a
}
