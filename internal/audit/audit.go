// Package audit records the arguments and results of sensitive admin operations.
//
// Operations are wrapped explicitly where they are wired:
//
//	changeRole := audit.Wrap(recorder, "ChangeUserRole", admin.ChangeUserRole)
//
// The wrapper records one request entry before the call and, only when the call
// succeeds, one response entry after it. Errors from the wrapped operation are
// returned untouched.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/observability"
)

// Phase tells whether an entry was recorded before or after the operation ran.
type Phase string

const (
	PhaseRequest  Phase = "request"
	PhaseResponse Phase = "response"
)

// Entry is one audit record. Entries of the same call share CallID.
type Entry struct {
	CallID    string          `json:"call_id"`
	Operation string          `json:"operation"`
	Phase     Phase           `json:"phase"`
	UserID    string          `json:"user_id,omitempty"`
	Path      string          `json:"path,omitempty"`
	At        time.Time       `json:"at"`
	Body      json.RawMessage `json:"body"`
}

type pathKey struct{}

// WithPath returns a context carrying the request path recorded on entries.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

func pathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(pathKey{}).(string)
	return path
}

// Sink stores audit entries. Implementations must be safe for concurrent use.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// Operation is the shape of a wrappable call: one argument in, one result out.
type Operation[A, R any] func(ctx context.Context, arg A) (R, error)

// Recorder fans entries out to its sinks. Sink failures are logged and otherwise ignored.
type Recorder struct {
	sinks   []Sink
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
	newID   func() string
}

// NewRecorder builds a recorder over the given sinks.
func NewRecorder(logger *zap.Logger, metrics *observability.Metrics, sinks ...Sink) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Wrap decorates op so that each call is audited under name.
func Wrap[A, R any](rec *Recorder, name string, op Operation[A, R]) Operation[A, R] {
	if rec == nil {
		return op
	}
	return func(ctx context.Context, arg A) (R, error) {
		callID := rec.newID()
		rec.record(ctx, callID, name, PhaseRequest, arg)

		result, err := op(ctx, arg)
		if err != nil {
			return result, err
		}

		rec.record(ctx, callID, name, PhaseResponse, result)
		return result, nil
	}
}

func (r *Recorder) record(ctx context.Context, callID, operation string, phase Phase, value any) {
	entry := Entry{
		CallID:    callID,
		Operation: operation,
		Phase:     phase,
		Path:      pathFromContext(ctx),
		At:        r.now(),
		Body:      r.encode(operation, phase, value),
	}
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		entry.UserID = identity.Subject
	}

	for _, sink := range r.sinks {
		if err := sink.Record(ctx, entry); err != nil {
			r.logger.Warn("audit sink failed",
				zap.String("operation", operation),
				zap.String("phase", string(phase)),
				zap.Error(err),
			)
		}
	}
	r.metrics.RecordAudit(operation, string(phase))
}

func (r *Recorder) encode(operation string, phase Phase, value any) json.RawMessage {
	body, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("audit payload not serializable",
			zap.String("operation", operation),
			zap.String("phase", string(phase)),
			zap.Error(err),
		)
		return json.RawMessage("null")
	}
	return body
}
