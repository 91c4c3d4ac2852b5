package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"jobboard/internal/domain/event"
	"jobboard/internal/domain/notification"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMatchAndNotify_EmitsPerMatchingCandidate(t *testing.T) {
	s := newMemStore()
	s.addSkill("cand-b", "Go")
	s.addSkill("cand-a", "postgres")
	s.addSkill("cand-a", "Postgres")
	s.addSkill("cand-c", "Rust")
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em, Workers: 2})

	rep := m.MatchAndNotify(context.Background(), "job-1", "We use GO and PostgreSQL")

	want := []string{"cand-a", "cand-b"}
	if !reflect.DeepEqual(em.candidates(), want) {
		t.Fatalf("emitted to %v, want %v", em.candidates(), want)
	}
	if !reflect.DeepEqual(rep.Matched, want) || rep.Emitted != 2 || rep.Failed != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	for _, ev := range em.events {
		if ev.Action != event.ActionJobMatch {
			t.Fatalf("unexpected action %q", ev.Action)
		}
		var d event.JobMatchData
		if err := ev.Decode(&d); err != nil || d.JobID != "job-1" {
			t.Fatalf("unexpected payload %s (%v)", ev.Data, err)
		}
	}
}

func TestMatchAndNotify_BlankRequirementsSkipsLoad(t *testing.T) {
	s := newMemStore()
	s.addSkill("cand-a", "go")
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em})

	for _, req := range []string{"", "   ", "\n\t"} {
		rep := m.MatchAndNotify(context.Background(), "job-1", req)
		if !rep.Skipped {
			t.Fatalf("%q: expected skipped run", req)
		}
	}
	if s.listAllHit != 0 {
		t.Fatalf("expected no skill load, got %d", s.listAllHit)
	}
	if len(em.events) != 0 {
		t.Fatalf("expected no emits")
	}
}

func TestMatchAndNotify_NoSkills(t *testing.T) {
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{newMemStore()}, Emitter: em})

	rep := m.MatchAndNotify(context.Background(), "job-1", "Go")
	if !rep.Skipped || len(em.events) != 0 {
		t.Fatalf("expected skipped run without emits, got %+v", rep)
	}
}

func TestMatchAndNotify_LoadFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := newMemStore()
	s.skillsErr = errors.New("db down")
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em, Logger: zap.New(core)})

	rep := m.MatchAndNotify(context.Background(), "job-1", "Go")
	if !rep.LoadFail {
		t.Fatalf("expected load failure in report")
	}
	if len(em.events) != 0 {
		t.Fatalf("expected no emits")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}

func TestMatchAndNotify_EmitFailureIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newMemStore()
	s.addSkill("cand-a", "go")
	s.addSkill("cand-b", "go")
	s.addSkill("cand-c", "go")
	em := &recordingEmitter{failFor: map[string]bool{"cand-b": true}}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em, Logger: zap.New(core)})

	rep := m.MatchAndNotify(context.Background(), "job-1", "golang")
	if rep.Emitted != 2 || rep.Failed != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if !reflect.DeepEqual(em.candidates(), []string{"cand-a", "cand-c"}) {
		t.Fatalf("unexpected emits %v", em.candidates())
	}
	failed := logs.FilterField(zap.String("candidate_id", "cand-b"))
	if failed.Len() != 1 {
		t.Fatalf("expected the failure for cand-b to be logged, got %v", logs.All())
	}
}

func TestMatchAndNotify_PanickingEmitterIsIsolated(t *testing.T) {
	s := newMemStore()
	s.addSkill("cand-a", "go")
	s.addSkill("cand-b", "go")
	em := EmitterFunc(func(_ context.Context, ev event.Event) error {
		var d event.JobMatchData
		_ = ev.Decode(&d)
		if d.CandidateID == "cand-a" {
			panic("boom")
		}
		return nil
	})
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em})

	rep := m.MatchAndNotify(context.Background(), "job-1", "go")
	if rep.Emitted != 1 || rep.Failed != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

// J1 needs SEO; C1 knows seo, C2 knows java. Only C1 hears about J1, and the
// matcher itself writes nothing.
func TestMatchAndNotify_EndToEndInProcess(t *testing.T) {
	s := newMemStore()
	s.addCompany("co-1", "employer-1")
	s.addJob("J1", "SEO Specialist", "co-1", "Need SEO skills")
	s.addSkill("C1", "seo")
	s.addSkill("C2", "java")

	notifier := newTestNotifier(s, nil)
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: NewInProcessEmitter(notifier)})

	rep := m.MatchAndNotify(context.Background(), "J1", "Need SEO skills")
	if rep.Emitted != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}

	rows := s.rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rows))
	}
	got := rows[0]
	if got.UserID != "C1" || got.Type != notification.TypeJobMatch || got.Title != "Việc làm phù hợp" {
		t.Fatalf("unexpected row %+v", got)
	}
	if got.RelatedID == nil || *got.RelatedID != "J1" {
		t.Fatalf("expected related id J1")
	}
}

// The notifier re-checks against the stored job, so a matcher run with stale
// requirements does not produce a notification.
func TestMatchAndNotify_NotifierRechecksStoredRequirements(t *testing.T) {
	s := newMemStore()
	s.addJob("J1", "Java Dev", "co-1", "Java")
	s.addSkill("C1", "seo")

	notifier := newTestNotifier(s, nil)
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: NewInProcessEmitter(notifier)})

	rep := m.MatchAndNotify(context.Background(), "J1", "SEO")
	if rep.Emitted != 1 {
		t.Fatalf("expected the event to be delivered, got %+v", rep)
	}
	if len(s.rows()) != 0 {
		t.Fatalf("expected no notification, got %d", len(s.rows()))
	}
}

func TestDispatch_RunsDetached(t *testing.T) {
	s := newMemStore()
	s.addSkill("cand-a", "go")
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em, Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	m.Dispatch(ctx, "job-1", "go")
	cancel()
	m.Wait()

	if !reflect.DeepEqual(em.candidates(), []string{"cand-a"}) {
		t.Fatalf("expected detached run to survive caller cancel, got %v", em.candidates())
	}
}

func TestRunForJob_ResolvesStoredRequirements(t *testing.T) {
	s := newMemStore()
	s.addJob("J1", "SEO Specialist", "co-1", "Need SEO skills")
	s.addSkill("C1", "seo")
	s.addSkill("C2", "java")
	em := &recordingEmitter{}
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Jobs: memJobs{s}, Emitter: em})

	rep, err := m.RunForJob(context.Background(), "J1", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(rep.Matched, []string{"C1"}) {
		t.Fatalf("unexpected matches %v", rep.Matched)
	}

	override := "java"
	rep, err = m.RunForJob(context.Background(), "J1", &override)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(rep.Matched, []string{"C2"}) {
		t.Fatalf("expected explicit requirements to win, got %v", rep.Matched)
	}
}

func TestDispatchForJob_Errors(t *testing.T) {
	s := newMemStore()
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Jobs: memJobs{s}, Emitter: &recordingEmitter{}})

	if err := m.DispatchForJob(context.Background(), " ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := m.DispatchForJob(context.Background(), "missing", nil); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	m.Wait()
}

func TestMatchAndNotify_DeliveredBeforeCancelCountsAsEmitted(t *testing.T) {
	s := newMemStore()
	s.addSkill("cand-a", "SEO")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	em := EmitterFunc(func(context.Context, event.Event) error {
		cancel()
		return nil
	})
	m := NewMatcher(MatcherDeps{Skills: memSkills{s}, Emitter: em, Workers: 1})

	rep := m.MatchAndNotify(ctx, "job-1", "SEO writer")
	if rep.Emitted != 1 || rep.Failed != 0 {
		t.Fatalf("expected one emitted and none failed, got %+v", rep)
	}
}
