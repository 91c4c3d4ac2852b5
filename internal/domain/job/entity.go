package job

// Job is a posting as the matching core sees it. Requirements is free text
// and may be absent.
type Job struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	CompanyID    string  `json:"company_id"`
	Requirements *string `json:"requirements,omitempty"`
}

// RequirementsText returns the requirements or "" when absent.
func (j Job) RequirementsText() string {
	if j.Requirements == nil {
		return ""
	}
	return *j.Requirements
}

// CompanyMetadata is the free-form metadata column of a company. The owning
// employer is only reachable through it.
type CompanyMetadata struct {
	UserID string `json:"user_id"`
}

type Company struct {
	ID       string
	Metadata *CompanyMetadata
}

// EmployerUserID returns the employer user id stored in metadata, if any.
func (c Company) EmployerUserID() (string, bool) {
	if c.Metadata == nil || c.Metadata.UserID == "" {
		return "", false
	}
	return c.Metadata.UserID, true
}

type Application struct {
	ID     string
	JobID  string
	Status string
	Email  string
}
