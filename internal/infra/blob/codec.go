// Package blob serializes the durable store's two logical values — the
// append-only result list and the weak-concept list — as versioned JSON
// envelopes. Decoding is deliberately forgiving: missing, malformed, or
// wrong-version data decodes to an empty collection, because losing historical
// analytics is non-fatal to taking a new quiz.
package blob

import (
	"encoding/json"

	"gamified-learning-service/internal/domain"
)

// SchemaVersion is bumped when the envelope layout changes; older or unknown
// versions degrade to empty rather than attempting a migration in place.
const SchemaVersion = 1

type resultEnvelope struct {
	SchemaVersion int                 `json:"schemaVersion"`
	Results       []domain.QuizResult `json:"results"`
}

type conceptEnvelope struct {
	SchemaVersion int      `json:"schemaVersion"`
	Concepts      []string `json:"concepts"`
}

// EncodeResults wraps results in the current envelope.
func EncodeResults(results []domain.QuizResult) ([]byte, error) {
	return json.Marshal(resultEnvelope{SchemaVersion: SchemaVersion, Results: results})
}

// DecodeResults unwraps a stored result list. Any decode problem yields an
// empty list.
func DecodeResults(raw []byte) []domain.QuizResult {
	if len(raw) == 0 {
		return nil
	}
	var env resultEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.SchemaVersion != SchemaVersion {
		return nil
	}
	return env.Results
}

// EncodeConcepts wraps a weak-concept list in the current envelope.
func EncodeConcepts(concepts []string) ([]byte, error) {
	return json.Marshal(conceptEnvelope{SchemaVersion: SchemaVersion, Concepts: concepts})
}

// DecodeConcepts unwraps a stored weak-concept list, degrading to empty.
func DecodeConcepts(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var env conceptEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.SchemaVersion != SchemaVersion {
		return nil
	}
	return env.Concepts
}
