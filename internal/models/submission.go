package models

import "time"

// SubmissionRecord is the audit trail row for one delivered submission.
// Only completed deliveries are recorded; in-progress form state never
// touches the database.
type SubmissionRecord struct {
	ID        int64     `json:"id"`
	Client    string    `json:"client"`
	Period    string    `json:"period"`
	FileCount int       `json:"file_count"`
	Reference string    `json:"reference"`
	SentAt    time.Time `json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
}
