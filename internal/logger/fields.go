package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldAgent is the structured log field key for the agent name.
	FieldAgent = "agent"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldCandidate is the structured log field key for the candidate id.
	FieldCandidate = "candidate_id"
)

// AgentFields returns standard zap fields describing an agent and its model.
// Empty values are dropped to keep log entries compact.
func AgentFields(agent, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if agent = strings.TrimSpace(agent); agent != "" {
		fields = append(fields, zap.String(FieldAgent, agent))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithFields safely attaches the provided fields to the logger, defaulting
// to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
