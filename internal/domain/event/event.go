// Package event defines the messages accepted by the notification intake.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Action string

const (
	ActionJobApplication    Action = "job_application"
	ActionJobMatch          Action = "job_match"
	ActionApplicationUpdate Action = "application_update"
)

var ErrUnknownAction = errors.New("unknown action")

// ParseAction returns ErrUnknownAction for anything outside the closed set.
// Callers treat that as a no-op, not a failure.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionJobApplication, ActionJobMatch, ActionApplicationUpdate:
		return a, nil
	}
	return a, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Event is the wire envelope: {"action": ..., "data": {...}}.
type Event struct {
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type JobApplicationData struct {
	JobID         string `json:"jobId"`
	ApplicantName string `json:"applicantName"`
}

type JobMatchData struct {
	JobID       string `json:"jobId"`
	CandidateID string `json:"candidateId"`
}

type ApplicationUpdateData struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	CandidateID   string `json:"candidateId"`
}

func New(action Action, data any) (Event, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Action: action, Data: b}, nil
}

func NewJobMatch(jobID, candidateID string) Event {
	b, _ := json.Marshal(JobMatchData{JobID: jobID, CandidateID: candidateID})
	return Event{Action: ActionJobMatch, Data: b}
}

// Decode unmarshals the payload into out. A missing payload decodes as an
// empty object.
func (e Event) Decode(out any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Action, err)
	}
	return nil
}
