package storage

import (
	"time"

	"fixit-be/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.Local)
}

func coord(v float64) *float64 {
	return &v
}

// SeedIssues returns the sample collection used when nothing is stored yet.
// Each call returns fresh values.
func SeedIssues() []models.Issue {
	return []models.Issue{
		{
			ID:          "1",
			Title:       "Large pothole on Main Street",
			Description: "Dangerous pothole near intersection causing traffic issues",
			Category:    models.RoadRepair,
			Priority:    models.High,
			Status:      models.InProgress,
			Location:    "Main St & 5th Ave",
			Latitude:    coord(40.7128),
			Longitude:   coord(-74.0060),
			ReportedBy:  "Sarah Johnson",
			ReportedAt:  day(28),
			Updates: []models.IssueUpdate{
				{
					ID:         "1",
					Message:    "Issue acknowledged by city maintenance department",
					Timestamp:  day(29),
					Author:     "City Admin",
					AuthorRole: models.RoleAdmin,
				},
				{
					ID:         "2",
					Message:    "Crew dispatched to assess the damage",
					Timestamp:  day(30),
					Author:     "City Admin",
					AuthorRole: models.RoleAdmin,
				},
			},
			Upvotes: 24,
		},
		{
			ID:          "2",
			Title:       "Overflowing trash bin at Park Avenue",
			Description: "Public trash bin has not been emptied for over a week",
			Category:    models.TrashPickup,
			Priority:    models.Medium,
			Status:      models.Acknowledged,
			Location:    "Park Ave Community Center",
			Latitude:    coord(40.7589),
			Longitude:   coord(-73.9851),
			ReportedBy:  "Mike Chen",
			ReportedAt:  day(30),
			Updates: []models.IssueUpdate{
				{
					ID:         "3",
					Message:    "Report received and assigned to sanitation team",
					Timestamp:  day(31),
					Author:     "Sanitation Dept",
					AuthorRole: models.RoleAdmin,
				},
			},
			Upvotes: 15,
		},
		{
			ID:          "3",
			Title:       "Graffiti on community center wall",
			Description: "Vandalism on the north wall of the community center",
			Category:    models.GraffitiRemoval,
			Priority:    models.Medium,
			Status:      models.Resolved,
			Location:    "Downtown Community Center",
			Latitude:    coord(40.7580),
			Longitude:   coord(-73.9855),
			ReportedBy:  "Emily Rodriguez",
			ReportedAt:  day(25),
			Updates: []models.IssueUpdate{
				{
					ID:         "4",
					Message:    "Volunteer cleanup team organized",
					Timestamp:  day(26),
					Author:     "Volunteer Coordinator",
					AuthorRole: models.RoleVolunteer,
				},
				{
					ID:         "5",
					Message:    "Graffiti successfully removed. Thank you volunteers!",
					Timestamp:  day(27),
					Author:     "Volunteer Coordinator",
					AuthorRole: models.RoleVolunteer,
				},
			},
			Upvotes: 32,
		},
	}
}
