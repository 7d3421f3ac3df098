package model

// Issue titles chosen by the classifier. Immutable once set on a draft.
const (
	IssueRepair    = "Repair"
	IssueExchange  = "Product Exchange"
	IssueTechnical = "Technical Support"
	IssueBilling   = "Billing Inquiry"
	IssueGeneral   = "General Issue"
)

// Sentinel values used when a profile field is absent.
const (
	UnknownFirstName     = "Unknown First Name"
	UnknownLastName      = "Unknown Last Name"
	UnknownAddress       = "Unknown Address"
	UnknownContactNumber = "Unknown Contact Number"
)

// TicketDraft is the in-progress structured ticket record assembled across
// the collection dialogue.
type TicketDraft struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	IssueTitle    string `json:"issue_title"`
	// IssueDescription stays a placeholder until the time step completes.
	IssueDescription string `json:"issue_description"`
	// ScheduledTime is set only during the time step, in
	// "YYYY-MM-DD H:MM AM/PM" form as captured from the user.
	ScheduledTime string `json:"scheduled_time,omitempty"`
}
