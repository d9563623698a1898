// Package issues owns the canonical issue collection and the read-only
// projections computed from it.
package issues

import (
	"time"

	"fixit-be/models"
)

// ReportFields are the caller-supplied fields of a new issue. The caller is
// responsible for validating them.
type ReportFields struct {
	Title       string
	Description string
	Category    models.IssueCategory
	Priority    models.IssuePriority
	Status      models.IssueStatus
	Location    string
	ImageURL    *string
	ReportedBy  string
	Latitude    *float64
	Longitude   *float64
}

// Repository holds issues newest first. It is not safe for concurrent use;
// callers serialize access.
type Repository struct {
	issues []models.Issue
	now    func() time.Time
	newID  func() string
}

type Option func(*Repository)

// WithClock overrides the time source used for reportedAt and update timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides the id source for issues and updates.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// NewRepository takes a private copy of initial.
func NewRepository(initial []models.Issue, opts ...Option) *Repository {
	r := &Repository{
		issues: cloneAll(initial),
		now:    time.Now,
		newID:  models.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report creates an issue and puts it at the front of the collection.
func (r *Repository) Report(f ReportFields) models.Issue {
	issue := models.Issue{
		ID:          r.newID(),
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Priority:    f.Priority,
		Status:      f.Status,
		Location:    f.Location,
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		ImageURL:    f.ImageURL,
		ReportedBy:  f.ReportedBy,
		ReportedAt:  r.now(),
		Updates:     []models.IssueUpdate{},
		Upvotes:     0,
	}
	issue = issue.Clone()

	r.issues = append([]models.Issue{issue}, r.issues...)
	return issue.Clone()
}

// Upvote adds one vote. It reports false, changing nothing, when id is unknown.
func (r *Repository) Upvote(id string) (models.Issue, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Issue{}, false
	}
	r.issues[idx].Upvotes++
	return r.issues[idx].Clone(), true
}

// AddUpdate appends a timeline entry. It reports false when id is unknown.
// The new entry is never timestamped before the previous one.
func (r *Repository) AddUpdate(id, message, author string, role models.AuthorRole) (models.IssueUpdate, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.IssueUpdate{}, false
	}

	issue := &r.issues[idx]
	ts := r.now()
	if n := len(issue.Updates); n > 0 && ts.Before(issue.Updates[n-1].Timestamp) {
		ts = issue.Updates[n-1].Timestamp
	}

	update := models.IssueUpdate{
		ID:         r.newID(),
		Message:    message,
		Timestamp:  ts,
		Author:     author,
		AuthorRole: role,
	}
	// Fresh backing array so copies handed out earlier never observe the append.
	updates := make([]models.IssueUpdate, len(issue.Updates), len(issue.Updates)+1)
	copy(updates, issue.Updates)
	issue.Updates = append(updates, update)
	return update, true
}

// Get returns a copy of the issue with the given id.
func (r *Repository) Get(id string) (models.Issue, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Issue{}, false
	}
	return r.issues[idx].Clone(), true
}

// All returns a copy of the collection in canonical order.
func (r *Repository) All() []models.Issue {
	return cloneAll(r.issues)
}

func (r *Repository) Len() int {
	return len(r.issues)
}

func (r *Repository) indexOf(id string) int {
	for i := range r.issues {
		if r.issues[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []models.Issue) []models.Issue {
	out := make([]models.Issue, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
