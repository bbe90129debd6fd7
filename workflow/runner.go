package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidqa/client"
	"vidqa/session"
	"vidqa/types"
)

// Service is the remote capability surface the runner drives
type Service interface {
	SubmitVideo(ctx context.Context, videoURL string) (*client.ProcessResponse, error)
	ListVideos(ctx context.Context) (*client.ListResponse, error)
	DeleteVideo(ctx context.Context, videoID string) error
	AskQuestion(ctx context.Context, videoID, question string, history []types.ConversationMessage) (*client.AnswerResponse, error)
	GenerateSummary(ctx context.Context, videoID string) (*client.SummaryResponse, error)
	Conversation(ctx context.Context, videoID string) (*client.ConversationResponse, error)
	ClearConversation(ctx context.Context, videoID string) error
	CheckHealth(ctx context.Context) bool
}

// Publisher receives one event per finished workflow run
type Publisher interface {
	Publish(ctx context.Context, event types.Event) error
}

// SummaryExporter stores a summary outside the session and returns where
type SummaryExporter interface {
	ExportSummary(ctx context.Context, video types.Video, summary types.Summary) (string, error)
}

// FeedSource resolves a channel or playlist feed into video URLs
type FeedSource interface {
	VideoURLs(ctx context.Context, feedURL string, limit int) ([]string, error)
}

// Runner executes the user-triggered workflows against the session store
type Runner struct {
	store    *session.Store
	service  Service
	events   Publisher
	exporter SummaryExporter
	feeds    FeedSource
	log      *slog.Logger
	now      func() time.Time

	// held keeps the event of a run until its slot is released
	mu   sync.Mutex
	held map[heldKey]heldEvent
}

type heldKey struct {
	workflow types.Workflow
	target   string
}

type heldEvent struct {
	ctx   context.Context
	event types.Event
}

// Option customizes a Runner
type Option func(*Runner)

// WithPublisher sends workflow events to p
func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.events = p }
}

// WithExporter enables summary export
func WithExporter(e SummaryExporter) Option {
	return func(r *Runner) { r.exporter = e }
}

// WithFeedSource enables feed import
func WithFeedSource(f FeedSource) Option {
	return func(r *Runner) { r.feeds = f }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a new workflow runner
func NewRunner(store *session.Store, service Service, opts ...Option) *Runner {
	r := &Runner{
		store:   store,
		service: service,
		log:     slog.New(slog.DiscardHandler),
		now:     time.Now,
		held:    make(map[heldKey]heldEvent),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the session store the runner commits into
func (r *Runner) Store() *session.Store {
	return r.store
}

// Select focuses a library video by id
func (r *Runner) Select(id string) error {
	v, ok := r.store.FindVideo(id)
	if !ok {
		return &ValidationError{Message: MsgUnknownVideo}
	}
	return r.store.SetSelection(v.ID)
}

// CheckHealth reports whether the service is reachable
func (r *Runner) CheckHealth(ctx context.Context) bool {
	return r.service.CheckHealth(ctx)
}

// slotTarget is the in-flight target of a workflow run. Deletes are keyed
// per video, everything else has one slot.
func slotTarget(w types.Workflow, videoID string) string {
	if w == types.WorkflowDelete {
		return videoID
	}
	return ""
}

// begin claims a workflow slot and marks it pending
func (r *Runner) begin(w types.Workflow, target, pending string) error {
	if !r.store.Begin(w, target) {
		r.log.Debug("workflow busy, ignoring invocation", "workflow", w, "target", target)
		return ErrBusy
	}
	r.store.SetStatus(w, types.Pending(pending))
	return nil
}

// end releases a slot, then publishes the event its run finished with
func (r *Runner) end(w types.Workflow, target string) {
	r.store.End(w, target)

	key := heldKey{workflow: w, target: target}
	r.mu.Lock()
	h, ok := r.held[key]
	delete(r.held, key)
	r.mu.Unlock()

	if ok {
		r.send(h.ctx, h.event)
	}
}

// reject reports invalid input without touching the network. A run of the
// same slot that is still pending keeps its status.
func (r *Runner) reject(ctx context.Context, w types.Workflow, videoID, message string) error {
	if !r.store.Pending(w, slotTarget(w, videoID)) {
		r.store.SetStatus(w, types.Failed(message))
	}
	r.log.Info("workflow rejected", "workflow", w, "reason", message)
	r.send(ctx, r.event(w, videoID, types.OutcomeRejected, message))
	return &ValidationError{Workflow: w, Message: message}
}

// fail reports a service failure, leaving prior state in place
func (r *Runner) fail(ctx context.Context, w types.Workflow, videoID, action string, err error) error {
	message := fmt.Sprintf("%s: %s", action, errorMessage(err))
	r.store.SetStatus(w, types.Failed(message))
	r.store.AddLog(message)
	r.log.Warn("workflow failed", "workflow", w, "video_id", videoID, "error", err)
	r.finish(ctx, r.event(w, videoID, types.OutcomeFailed, message))
	return err
}

// discard drops a response whose selection is gone
func (r *Runner) discard(ctx context.Context, w types.Workflow, videoID string) error {
	r.store.SetStatus(w, types.Idle(MsgStale))
	r.log.Info("discarded stale response", "workflow", w, "video_id", videoID)
	r.finish(ctx, r.event(w, videoID, types.OutcomeDiscarded, MsgStale))
	return ErrStale
}

// succeed reports a committed result
func (r *Runner) succeed(ctx context.Context, w types.Workflow, videoID, message string) {
	r.store.SetStatus(w, types.Succeeded(message))
	r.store.AddLog(message)
	r.log.Info("workflow succeeded", "workflow", w, "video_id", videoID)
	r.finish(ctx, r.event(w, videoID, types.OutcomeSucceeded, message))
}

// finish publishes the event of a run once its slot is released. Runs that
// never claimed a slot publish right away.
func (r *Runner) finish(ctx context.Context, event types.Event) {
	if r.events == nil {
		return
	}
	target := slotTarget(event.Workflow, event.VideoID)
	if !r.store.Pending(event.Workflow, target) {
		r.send(ctx, event)
		return
	}
	r.mu.Lock()
	r.held[heldKey{workflow: event.Workflow, target: target}] = heldEvent{ctx: ctx, event: event}
	r.mu.Unlock()
}

func (r *Runner) event(w types.Workflow, videoID, outcome, message string) types.Event {
	return types.Event{
		ID:       uuid.NewString(),
		Workflow: w,
		VideoID:  videoID,
		Outcome:  outcome,
		Message:  message,
		At:       r.now(),
	}
}

func (r *Runner) send(ctx context.Context, event types.Event) {
	if r.events == nil {
		return
	}
	if err := r.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		r.log.Warn("failed to publish workflow event", "workflow", event.Workflow, "error", err)
	}
}

// errorMessage extracts the user-facing text of a failure
func errorMessage(err error) string {
	if te, ok := client.AsTransportError(err); ok {
		return te.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
