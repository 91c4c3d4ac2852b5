package skill

// CandidateSkill is one declared skill of one candidate.
type CandidateSkill struct {
	UserID string
	Name   string
}
