package models

import "time"

// Ticket statuses. New tickets always open as StatusOpen.
const StatusOpen = "Open"

// DeadlineWindow is how long a ticket stays actionable before the expiry
// sweep removes it.
const DeadlineWindow = 72 * time.Hour

type Ticket struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Address          string    `json:"address"`
	ContactNumber    string    `json:"contact_no"`
	IssueTitle       string    `json:"issue_title"`
	IssueDescription string    `json:"issue_description"`
	ScheduledTime    string    `json:"scheduled_time"`
	Status           string    `json:"status"`
	UserRole         string    `json:"user_role,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	Deadline         time.Time `json:"deadline"`
	LastUpdated      time.Time `json:"last_updated,omitempty"`
}
