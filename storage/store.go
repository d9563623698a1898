package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"fixit-be/models"
)

// IssuesKey is the slot holding the whole issue collection.
const IssuesKey = "fixit-issues"

// Store loads and saves the issue collection through a Slot.
type Store struct {
	slot Slot
	key  string
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot, key: IssuesKey}
}

// Load returns the stored collection. The boolean is false when nothing usable
// is stored: the slot is empty, unreadable, or holds a malformed record.
func (s *Store) Load(ctx context.Context) ([]models.Issue, bool) {
	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return nil, false
	}
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("Failed to read stored issues")
		return nil, false
	}

	issues, err := decodeIssues([]byte(raw))
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("Stored issues are malformed, ignoring them")
		return nil, false
	}
	return issues, true
}

// Save writes the collection. An empty collection is never written so that a
// store that has not finished loading cannot clobber saved data.
func (s *Store) Save(ctx context.Context, issues []models.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	raw, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encoding issues: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}
	return nil
}

func decodeIssues(raw []byte) ([]models.Issue, error) {
	var issues []models.Issue
	if err := json.Unmarshal(raw, &issues); err != nil {
		return nil, err
	}
	if issues == nil {
		return nil, errors.New("missing issue collection")
	}

	seen := make(map[string]bool, len(issues))
	for i := range issues {
		issue := &issues[i]
		if err := checkIssue(issue); err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
		if seen[issue.ID] {
			return nil, fmt.Errorf("duplicate issue id %q", issue.ID)
		}
		seen[issue.ID] = true
		if issue.Updates == nil {
			issue.Updates = []models.IssueUpdate{}
		}
	}
	return issues, nil
}

func checkIssue(issue *models.Issue) error {
	switch {
	case issue.ID == "":
		return errors.New("missing id")
	case !issue.Category.Valid():
		return fmt.Errorf("unknown category %q", issue.Category)
	case !issue.Priority.Valid():
		return fmt.Errorf("unknown priority %q", issue.Priority)
	case !issue.Status.Valid():
		return fmt.Errorf("unknown status %q", issue.Status)
	case issue.Upvotes < 0:
		return fmt.Errorf("negative upvotes %d", issue.Upvotes)
	}
	for _, u := range issue.Updates {
		if !u.AuthorRole.Valid() {
			return fmt.Errorf("update %q: unknown author role %q", u.ID, u.AuthorRole)
		}
	}
	return nil
}
