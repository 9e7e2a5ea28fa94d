package helper

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NewRequestID returns a random UUID string, or "" if the system RNG fails.
func NewRequestID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		log.Warn().Err(err).Msg("Error generating request id")
		return ""
	}
	return id.String()
}

// pretty print raw json, falling back to the input as is
func PrettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
