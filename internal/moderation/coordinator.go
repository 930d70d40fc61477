package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tripline/guidemod/internal/logger"
	"github.com/tripline/guidemod/internal/models"
	"github.com/tripline/guidemod/internal/notify"
	"github.com/tripline/guidemod/internal/queue"
)

var (
	// ErrCommentRequired rejects a decline with no comment issued from the
	// detail flow. The quick-action path from the queue list deliberately
	// accepts an empty comment; that asymmetry is operator-facing behavior
	// and is kept.
	ErrCommentRequired = errors.New("decline requires a moderator comment")

	// ErrActionInFlight rejects a second action on an item while one is
	// still awaiting the backend. At most one in-flight action per item.
	ErrActionInFlight = errors.New("moderation action already in flight for this item")
)

// Backend is the remote moderation service the coordinator depends on.
type Backend interface {
	FetchQueue(ctx context.Context) ([]models.ModerationItem, error)
	Approve(ctx context.Context, id, comment string) error
	Decline(ctx context.Context, id, comment string) error
}

// Coordinator drives the moderation lifecycle: it refreshes the canonical
// collection and carries approve/decline decisions to the backend, mutating
// the store only after the server has confirmed. Nothing is flipped
// optimistically and nothing is retried; a failure leaves state exactly as
// it was.
type Coordinator struct {
	store     *queue.Store
	selection *queue.Selection
	backend   Backend
	notifier  *notify.Center
	onChange  func()

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCoordinator wires the coordinator. onChange fires after every confirmed
// store mutation so the caller can recompute the view and statistics; pass
// nil when nothing needs the signal.
func NewCoordinator(store *queue.Store, selection *queue.Selection, backend Backend, notifier *notify.Center, onChange func()) *Coordinator {
	if onChange == nil {
		onChange = func() {}
	}
	return &Coordinator{
		store:     store,
		selection: selection,
		backend:   backend,
		notifier:  notifier,
		onChange:  onChange,
		inFlight:  make(map[string]struct{}),
	}
}

// Refresh replaces the canonical collection with the backend's current
// queue. On failure the collection and the selection stay untouched.
func (c *Coordinator) Refresh(ctx context.Context) error {
	log := logger.Get()

	items, err := c.backend.FetchQueue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Queue refresh failed")
		c.notifier.Push("Failed to load moderation queue", notify.KindError)
		return fmt.Errorf("queue refresh failed: %w", err)
	}

	c.store.ReplaceAll(items)
	c.selection.Revalidate()
	c.onChange()

	log.Info().Int("items", c.store.Len()).Msg("Moderation queue refreshed")
	return nil
}

// Act submits one approve/decline decision for the item. fromDetail marks
// the detailed-inspection flow, where declining requires a comment. The
// status changes only after the backend confirms; any failure is terminal
// for this call and mutates nothing.
func (c *Coordinator) Act(ctx context.Context, id string, decision models.Decision, comment string, fromDetail bool) error {
	log := logger.Get()

	if _, err := c.store.Get(id); err != nil {
		return err
	}
	if decision == models.DecisionDecline && fromDetail && comment == "" {
		return ErrCommentRequired
	}

	if !c.acquire(id) {
		log.Warn().Str("id", id).Msg("Concurrent action on the same item rejected")
		return ErrActionInFlight
	}
	defer c.release(id)

	var (
		status  models.Status
		call    func(context.Context, string, string) error
		success string
		failure string
	)
	switch decision {
	case models.DecisionApprove:
		status = models.StatusApproved
		call = c.backend.Approve
		success = "Guide approved"
		failure = "Failed to approve guide"
	case models.DecisionDecline:
		status = models.StatusDeclined
		call = c.backend.Decline
		success = "Guide declined"
		failure = "Failed to decline guide"
	default:
		return fmt.Errorf("unknown decision %q", decision)
	}

	if err := call(ctx, id, comment); err != nil {
		// Network failures and server rejections read the same to the
		// operator; the log keeps them apart.
		log.Error().Err(err).
			Str("id", id).
			Str("decision", string(decision)).
			Msg("Moderation action failed")
		c.notifier.Push(failure, notify.KindError)
		return err
	}

	if err := c.store.SetStatus(id, status, comment); err != nil {
		return err
	}
	c.notifier.Push(success, notificationKind(decision))
	c.onChange()

	log.Info().
		Str("id", id).
		Str("decision", string(decision)).
		Bool("from_detail", fromDetail).
		Msg("Moderation action confirmed")
	return nil
}

// notificationKind keeps the console's styling: a confirmed decline is shown
// with the error treatment, matching the red badge the operator expects.
func notificationKind(decision models.Decision) notify.Kind {
	if decision == models.DecisionDecline {
		return notify.KindError
	}
	return notify.KindSuccess
}

func (c *Coordinator) acquire(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[id]; busy {
		return false
	}
	c.inFlight[id] = struct{}{}
	return true
}

func (c *Coordinator) release(id string) {
	c.mu.Lock()
	delete(c.inFlight, id)
	c.mu.Unlock()
}
