package mastery

import (
	"context"
	"time"

	"github.com/abhisek/wordpath/internal/logger"
)

// LoggingStore is a decorator that logs every mastery write and every failed
// read. Errors are returned unchanged.
type LoggingStore struct {
	inner Store
	log   *logger.Logger
}

// WithLogging wraps a Store with structured logging.
func WithLogging(s Store, log *logger.Logger) Store {
	return &LoggingStore{inner: s, log: log}
}

func (l *LoggingStore) GetMastery(ctx context.Context, userID, setID, symbolID string) (State, error) {
	st, err := l.inner.GetMastery(ctx, userID, setID, symbolID)
	if err != nil {
		l.log.Error("get mastery failed",
			"user_id", userID, "set_id", setID, "symbol_id", symbolID, "error", err)
	}
	return st, err
}

func (l *LoggingStore) SetMastery(ctx context.Context, userID, setID, symbolID string, state State) error {
	start := time.Now()
	err := l.inner.SetMastery(ctx, userID, setID, symbolID, state)

	kv := []any{
		"user_id", userID,
		"set_id", setID,
		"symbol_id", symbolID,
		"state", string(state),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.log.Error("set mastery failed", append(kv, "error", err)...)
		return err
	}
	l.log.Info("mastery updated", kv...)
	return nil
}
