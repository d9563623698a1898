package issues

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixit-be/models"
	"fixit-be/storage"
)

// fakeClock hands out times that advance by step on every call.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestRepository(clock *fakeClock) *Repository {
	return NewRepository(storage.SeedIssues(), WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
}

func TestRepository_Report(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), step: time.Minute}
	repo := newTestRepository(clock)

	lat, lng := 40.7128, -74.0060
	issue := repo.Report(ReportFields{
		Title:       "Broken streetlight",
		Description: "Light flickers all night",
		Category:    models.Streetlight,
		Priority:    models.Low,
		Status:      models.Reported,
		Location:    "Elm St",
		ReportedBy:  "Alex",
		Latitude:    &lat,
		Longitude:   &lng,
	})

	assert.Equal(t, "id-1", issue.ID)
	assert.Equal(t, 0, issue.Upvotes)
	assert.Empty(t, issue.Updates)
	assert.NotNil(t, issue.Updates)
	assert.Equal(t, time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), issue.ReportedAt)
	assert.Nil(t, issue.ImageURL)

	all := repo.All()
	require.Len(t, all, 4)
	assert.Equal(t, issue.ID, all[0].ID, "new issues go first")
	assert.Equal(t, "1", all[1].ID)

	lat = 0
	stored, ok := repo.Get(issue.ID)
	require.True(t, ok)
	assert.Equal(t, 40.7128, *stored.Latitude, "repository keeps its own copy of caller fields")
}

func TestRepository_ReportIDsAreUnique(t *testing.T) {
	repo := NewRepository(nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		issue := repo.Report(ReportFields{Title: "t", Description: "d", Location: "l", Category: models.Other, Priority: models.Low, Status: models.Reported})
		assert.False(t, seen[issue.ID])
		seen[issue.ID] = true
	}
	assert.Equal(t, 50, repo.Len())
}

func TestRepository_Upvote(t *testing.T) {
	repo := newTestRepository(&fakeClock{t: time.Now(), step: time.Second})

	for want := 25; want <= 27; want++ {
		issue, ok := repo.Upvote("1")
		require.True(t, ok)
		assert.Equal(t, want, issue.Upvotes)
	}

	before := repo.All()
	_, ok := repo.Upvote("missing")
	assert.False(t, ok)
	assert.Equal(t, before, repo.All())
}

func TestRepository_AddUpdate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
	repo := newTestRepository(clock)

	held, _ := repo.Get("2")
	update, ok := repo.AddUpdate("2", "Still overflowing", "Community Member", models.RoleUser)
	require.True(t, ok)
	assert.Equal(t, "id-1", update.ID)
	assert.Equal(t, models.RoleUser, update.AuthorRole)

	issue, _ := repo.Get("2")
	require.Len(t, issue.Updates, 2)
	assert.Equal(t, held.Updates[0], issue.Updates[0], "earlier updates untouched")
	assert.Equal(t, update, issue.Updates[1])
	assert.Len(t, held.Updates, 1, "copies handed out earlier do not change")
	assert.False(t, issue.Updates[1].Timestamp.Before(issue.Updates[0].Timestamp))

	_, ok = repo.AddUpdate("missing", "hello", "x", models.RoleUser)
	assert.False(t, ok)
}

func TestRepository_AddUpdateNeverGoesBackInTime(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), step: -time.Hour}
	repo := newTestRepository(clock)

	first, _ := repo.AddUpdate("1", "a", "x", models.RoleAdmin)
	second, _ := repo.AddUpdate("1", "b", "x", models.RoleAdmin)

	assert.False(t, second.Timestamp.Before(first.Timestamp))
	issue, _ := repo.Get("1")
	for i := 1; i < len(issue.Updates); i++ {
		assert.False(t, issue.Updates[i].Timestamp.Before(issue.Updates[i-1].Timestamp))
	}
}

func TestRepository_DoesNotAliasInput(t *testing.T) {
	seed := storage.SeedIssues()
	repo := NewRepository(seed)

	seed[0].Upvotes = 999
	seed[0].Updates[0].Message = "tampered"
	*seed[0].Latitude = 0

	issue, _ := repo.Get("1")
	assert.Equal(t, 24, issue.Upvotes)
	assert.NotEqual(t, "tampered", issue.Updates[0].Message)
	assert.Equal(t, 40.7128, *issue.Latitude)

	all := repo.All()
	all[0].Upvotes = 0
	again, _ := repo.Get("1")
	assert.Equal(t, 24, again.Upvotes)
}
