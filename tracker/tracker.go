// Package tracker is the application root: it owns the issue repository, the
// session contributor's ledger and the persistent store, and routes every
// mutation through one place.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"fixit-be/engagement"
	"fixit-be/issues"
	"fixit-be/models"
	"fixit-be/storage"
)

const storeTimeout = 10 * time.Second

// Tracker serializes all operations, so each action runs to completion before
// the next one starts.
type Tracker struct {
	mu     sync.Mutex
	store  *storage.Store
	repo   *issues.Repository
	ledger *engagement.Ledger
	now    func() time.Time
}

type config struct {
	user     models.User
	now      func() time.Time
	repoOpts []issues.Option
}

type Option func(*config)

// WithUser sets the session contributor. Defaults to engagement.DefaultUser.
func WithUser(u models.User) Option {
	return func(c *config) { c.user = u }
}

// WithClock sets the time source for new issues, updates and analytics.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDGenerator sets the id source for new issues and updates.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) { c.repoOpts = append(c.repoOpts, issues.WithIDGenerator(newID)) }
}

// Open loads the stored collection, seeding and saving the sample issues when
// nothing usable is stored. It fails only if the seed cannot be written.
func Open(ctx context.Context, store *storage.Store, opts ...Option) (*Tracker, error) {
	cfg := config{user: engagement.DefaultUser(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	loaded, ok := store.Load(loadCtx)
	if !ok {
		loaded = storage.SeedIssues()
		if err := store.Save(loadCtx, loaded); err != nil {
			return nil, fmt.Errorf("saving seed issues: %w", err)
		}
		log.WithField("issues", len(loaded)).Info("Seeded sample issues")
	} else {
		log.WithField("issues", len(loaded)).Info("Loaded stored issues")
	}

	repoOpts := append([]issues.Option{issues.WithClock(cfg.now)}, cfg.repoOpts...)
	return &Tracker{
		store:  store,
		repo:   issues.NewRepository(loaded, repoOpts...),
		ledger: engagement.NewLedger(cfg.user),
		now:    cfg.now,
	}, nil
}

// ReportIssue creates an issue and credits the session contributor. The
// returned error only reports a failed save; the issue exists either way.
func (t *Tracker) ReportIssue(ctx context.Context, f issues.ReportFields) (models.Issue, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	issue := t.repo.Report(f)
	t.ledger.RecordReport()

	log.WithFields(log.Fields{
		"issue_id": issue.ID,
		"category": issue.Category,
		"priority": issue.Priority,
	}).Info("Issue reported")

	return issue, t.persist(ctx)
}

// ViewIssue returns the issue with the given id.
func (t *Tracker) ViewIssue(id string) (models.Issue, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.repo.Get(id)
}

// UpvoteIssue adds one vote. An unknown id is a no-op reported by the boolean.
func (t *Tracker) UpvoteIssue(ctx context.Context, id string) (models.Issue, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	issue, ok := t.repo.Upvote(id)
	if !ok {
		return models.Issue{}, false, nil
	}
	return issue, true, t.persist(ctx)
}

// AddUpdate posts a comment from the session contributor.
func (t *Tracker) AddUpdate(ctx context.Context, id, message string) (models.IssueUpdate, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.postUpdateLocked(ctx, id, message, t.ledger.User().Name, models.RoleUser)
}

// PostUpdate appends a timeline entry on behalf of author.
func (t *Tracker) PostUpdate(ctx context.Context, id, message, author string, role models.AuthorRole) (models.IssueUpdate, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.postUpdateLocked(ctx, id, message, author, role)
}

// postUpdateLocked requires t.mu to be held.
func (t *Tracker) postUpdateLocked(ctx context.Context, id, message, author string, role models.AuthorRole) (models.IssueUpdate, bool, error) {
	update, ok := t.repo.AddUpdate(id, message, author, role)
	if !ok {
		return models.IssueUpdate{}, false, nil
	}
	return update, true, t.persist(ctx)
}

// Issues returns the whole collection, newest first.
func (t *Tracker) Issues() []models.Issue {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.repo.All()
}

func (t *Tracker) ListFiltered(c issues.Criteria) []models.Issue {
	t.mu.Lock()
	defer t.mu.Unlock()

	return issues.Filter(t.repo.All(), c)
}

func (t *Tracker) Stats() issues.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return issues.ComputeStats(t.repo.All())
}

func (t *Tracker) Analytics() issues.Analytics {
	t.mu.Lock()
	defer t.mu.Unlock()

	return issues.ComputeAnalytics(t.repo.All(), t.now())
}

// Located returns map pins for the newest issues with coordinates.
func (t *Tracker) Located(limit int) []issues.MapPin {
	t.mu.Lock()
	defer t.mu.Unlock()

	return issues.Located(t.repo.All(), limit)
}

// RegisterForEvent credits the first registration per event; it returns false
// for repeats.
func (t *Tracker) RegisterForEvent(eventID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.RegisterForEvent(eventID)
}

// RecordAction credits one of the engagement actions not tied to a mutation
// here (resolving an issue, completing an event, commenting, checking in).
func (t *Tracker) RecordAction(a engagement.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.Record(a)
}

func (t *Tracker) LogVolunteerHours(hours int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.LogVolunteerHours(hours)
}

// User returns the session contributor.
func (t *Tracker) User() models.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.User()
}

func (t *Tracker) EngagementSnapshot() engagement.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return engagement.TakeSnapshot(t.ledger.User())
}

// persist must be called with t.mu held.
func (t *Tracker) persist(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := t.store.Save(ctx, t.repo.All()); err != nil {
		log.WithError(err).Error("Failed to save issues")
		return fmt.Errorf("saving issues: %w", err)
	}
	return nil
}
