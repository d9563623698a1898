package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	RoadRepair      IssueCategory = "road-repair"
	TrashPickup     IssueCategory = "trash-pickup"
	GraffitiRemoval IssueCategory = "graffiti-removal"
	Streetlight     IssueCategory = "streetlight"
	ParkMaintenance IssueCategory = "park-maintenance"
	Other           IssueCategory = "other"
)

// Categories lists every category in display order.
var Categories = []IssueCategory{RoadRepair, TrashPickup, GraffitiRemoval, Streetlight, ParkMaintenance, Other}

func (c IssueCategory) Valid() bool {
	switch c {
	case RoadRepair, TrashPickup, GraffitiRemoval, Streetlight, ParkMaintenance, Other:
		return true
	}
	return false
}

// IssuePriority enum
type IssuePriority string

const (
	Low    IssuePriority = "low"
	Medium IssuePriority = "medium"
	High   IssuePriority = "high"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case Low, Medium, High:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Reported     IssueStatus = "reported"
	Acknowledged IssueStatus = "acknowledged"
	InProgress   IssueStatus = "in-progress"
	Resolved     IssueStatus = "resolved"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case Reported, Acknowledged, InProgress, Resolved:
		return true
	}
	return false
}

// AuthorRole enum
type AuthorRole string

const (
	RoleAdmin     AuthorRole = "admin"
	RoleVolunteer AuthorRole = "volunteer"
	RoleUser      AuthorRole = "user"
)

func (r AuthorRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleVolunteer, RoleUser:
		return true
	}
	return false
}

// Issue represents a community maintenance problem reported by a citizen
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	Priority    IssuePriority `json:"priority"`
	Status      IssueStatus   `json:"status"`
	Location    string        `json:"location"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	ReportedBy  string        `json:"reportedBy"`
	ReportedAt  time.Time     `json:"reportedAt"`
	Updates     []IssueUpdate `json:"updates"`
	Upvotes     int           `json:"upvotes"`
}

// IssueUpdate is a single timeline entry on an issue
type IssueUpdate struct {
	ID         string     `json:"id"`
	Message    string     `json:"message"`
	Timestamp  time.Time  `json:"timestamp"`
	Author     string     `json:"author"`
	AuthorRole AuthorRole `json:"authorRole"`
}

// HasLocation reports whether the issue carries a coordinate fix.
func (i Issue) HasLocation() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// Clone returns a deep copy that shares no memory with i.
func (i Issue) Clone() Issue {
	out := i
	if i.Latitude != nil {
		lat := *i.Latitude
		out.Latitude = &lat
	}
	if i.Longitude != nil {
		lng := *i.Longitude
		out.Longitude = &lng
	}
	if i.ImageURL != nil {
		img := *i.ImageURL
		out.ImageURL = &img
	}
	out.Updates = make([]IssueUpdate, len(i.Updates))
	copy(out.Updates, i.Updates)
	return out
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
