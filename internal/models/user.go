package models

// UserProfile holds the contact details kept on file for a verified user.
type UserProfile struct {
	UserID        string `json:"user_id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNo"`
	Role          string `json:"role"` // end_user | agent | admin
}
