package audit

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes entries to a zap logger at info level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink backed by logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

func (s *LogSink) Record(_ context.Context, entry Entry) error {
	message := "request body"
	if entry.Phase == PhaseResponse {
		message = "response body"
	}
	s.logger.Info(message,
		zap.String("call_id", entry.CallID),
		zap.String("operation", entry.Operation),
		zap.String("user_id", entry.UserID),
		zap.String("url", entry.Path),
		zap.Time("at", entry.At),
		zap.ByteString("body", entry.Body),
	)
	return nil
}
