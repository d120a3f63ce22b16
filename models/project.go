package models

// ProjectSubmission is one user's intake collected by the chat flow.
type ProjectSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"` // lookup key for later status updates
	Phone       string `json:"phone"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Budget      string `json:"budget"` // numeric string, currency symbols allowed
	Location    string `json:"location"`
}

// ProjectResults is the AI output stored alongside a submission. It is the
// payload serialized into the results column of the sheet.
type ProjectResults struct {
	SubmissionID string           `json:"submissionId,omitempty"`
	PartsList    *PartsList       `json:"partsList,omitempty"`
	Analysis     *ProjectAnalysis `json:"analysis,omitempty"`
}

// StoredProject is one deserialized sheet row.
type StoredProject struct {
	Timestamp string          `json:"timestamp"`
	ProjectSubmission
	Results *ProjectResults `json:"results,omitempty"`
}

// StatusUpdate carries the fields written back after payment confirmation.
// SubmissionID takes precedence over Email when locating the row.
type StatusUpdate struct {
	ProjectSubmission
	SubmissionID  string `json:"submissionId,omitempty"`
	ServiceType   string `json:"serviceType"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}
