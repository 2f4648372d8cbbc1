package billing

import (
	"go.uber.org/zap"
)

// zapRejectionSink logs discarded lines through the structured logger.
// Non-positive durations are expected operator noise and stay at debug;
// everything else warns.
type zapRejectionSink struct {
	logger *zap.Logger
}

// NewZapRejectionSink creates a RejectionSink backed by a zap logger
func NewZapRejectionSink(logger *zap.Logger) RejectionSink {
	return &zapRejectionSink{logger: logger}
}

func (s *zapRejectionSink) Reject(lineNumber int, line string, reason RejectReason) {
	fields := []zap.Field{
		zap.Int("line", lineNumber),
		zap.String("content", line),
		zap.String("reason", string(reason)),
	}

	if reason == RejectDuration {
		s.logger.Debug("skipping call log line", fields...)
		return
	}
	s.logger.Warn("skipping call log line", fields...)
}

// nopRejectionSink discards all notifications
type nopRejectionSink struct{}

// NewNopRejectionSink creates a RejectionSink that drops every notification
func NewNopRejectionSink() RejectionSink {
	return nopRejectionSink{}
}

func (nopRejectionSink) Reject(int, string, RejectReason) {}
