package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const keyPrefix = "analytics"

// Key builds a cache key from an operation name and its parameters. Scalar
// parts are kept readable; anything else is folded into a short digest.
func Key(operation string, params ...interface{}) string {
	parts := []string{keyPrefix, operation}
	for _, p := range params {
		switch v := p.(type) {
		case string:
			parts = append(parts, strings.ToLower(v))
		case fmt.Stringer:
			parts = append(parts, strings.ToLower(v.String()))
		case int, int64, float64, bool:
			parts = append(parts, fmt.Sprint(v))
		default:
			parts = append(parts, digest(v))
		}
	}
	return strings.Join(parts, ":")
}

// ForecastJobKey is where the worker stores a finished forecast job.
func ForecastJobKey(jobID string) string {
	return fmt.Sprintf("%s:forecast:job:%s", keyPrefix, jobID)
}

func digest(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		raw = []byte(fmt.Sprintf("%#v", v))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
