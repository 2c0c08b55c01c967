package api

import (
	"github.com/google/uuid"
)

// generationIDHeader carries the id that ties a response to its log lines.
const generationIDHeader = "X-Generation-Id"

// newGenerationID returns a fresh random id for one generation attempt.
func newGenerationID() string {
	return uuid.NewString()
}
