package event

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"job_application", "job_match", "application_update"} {
		a, err := ParseAction(s)
		if err != nil {
			t.Errorf("ParseAction(%q) unexpected err: %v", s, err)
		}
		if string(a) != s {
			t.Errorf("ParseAction(%q) = %q", s, a)
		}
	}

	for _, s := range []string{"", "job_matches", "JOB_MATCH", "delete_everything"} {
		if _, err := ParseAction(s); !errors.Is(err, ErrUnknownAction) {
			t.Errorf("ParseAction(%q) expected ErrUnknownAction, got %v", s, err)
		}
	}
}

func TestEvent_WireFormat(t *testing.T) {
	raw := `{"action":"application_update","data":{"applicationId":"A1","status":"interview","candidateId":"C1"}}`

	var ev Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Action != ActionApplicationUpdate {
		t.Fatalf("unexpected action %q", ev.Action)
	}

	var d ApplicationUpdateData
	if err := ev.Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.ApplicationID != "A1" || d.Status != "interview" || d.CandidateID != "C1" {
		t.Fatalf("unexpected payload: %+v", d)
	}
}

func TestEvent_DecodeMissingData(t *testing.T) {
	ev := Event{Action: ActionJobMatch}
	var d JobMatchData
	if err := ev.Decode(&d); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.JobID != "" || d.CandidateID != "" {
		t.Fatalf("expected zero payload, got %+v", d)
	}
}

func TestEvent_DecodeMalformed(t *testing.T) {
	ev := Event{Action: ActionJobMatch, Data: json.RawMessage(`"nope"`)}
	var d JobMatchData
	if err := ev.Decode(&d); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestNewJobMatch(t *testing.T) {
	ev := NewJobMatch("J1", "C1")
	if ev.Action != ActionJobMatch {
		t.Fatalf("unexpected action %q", ev.Action)
	}
	var d JobMatchData
	if err := ev.Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.JobID != "J1" || d.CandidateID != "C1" {
		t.Fatalf("unexpected payload: %+v", d)
	}
}
