// Package agents contains the stateless evaluation agents of the
// recruitment pipeline. Each agent wraps a single call to the external
// text-generation service, validates its input up front and converts the
// service's untrusted JSON output into typed results.
package agents

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// MalformedResponseError indicates the model answered but its output could
// not be decoded into structured data. The raw text is preserved for
// diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// extractJSON strips Markdown code fences the model may wrap around its
// JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	return strings.TrimSpace(raw)
}

// decodePayload parses the model output into target. The JSON is first
// unmarshalled into a generic map and then decoded weakly typed, so numeric
// strings and ints coming from the model still land in float fields.
func decodePayload(raw string, target any) error {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("build payload decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}

	return nil
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// marshalIndent renders v as indented JSON for prompt embedding. Marshal
// failures on these plain structs are programming errors; the raw error is
// returned so callers can surface them.
func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prompt payload: %w", err)
	}

	return string(data), nil
}
