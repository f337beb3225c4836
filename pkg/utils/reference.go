package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReference builds a human-readable document number such as
// "VTE-20240315-3F2A9C1B".
func GenerateReference(prefix string, at time.Time) string {
	return prefix + "-" + at.Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// ParseUUID parses a path parameter into a UUID.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}
