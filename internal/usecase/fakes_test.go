package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/skill"
	"jobboard/internal/repository"
)

type memStore struct {
	mu            sync.Mutex
	jobs          map[string]job.Job
	companies     map[string]job.Company
	applications  map[string]job.Application
	skills        []skill.CandidateSkill
	notifications []notification.Notification

	skillsErr  error
	insertErr  error
	listAllHit int
}

func newMemStore() *memStore {
	return &memStore{
		jobs:         make(map[string]job.Job),
		companies:    make(map[string]job.Company),
		applications: make(map[string]job.Application),
	}
}

func strPtr(s string) *string { return &s }

func (m *memStore) addJob(id, title, companyID, requirements string) {
	j := job.Job{ID: id, Title: title, CompanyID: companyID}
	if requirements != "" {
		j.Requirements = strPtr(requirements)
	}
	m.jobs[id] = j
}

func (m *memStore) addCompany(id, employerID string) {
	c := job.Company{ID: id}
	if employerID != "" {
		c.Metadata = &job.CompanyMetadata{UserID: employerID}
	}
	m.companies[id] = c
}

func (m *memStore) addSkill(userID, name string) {
	m.skills = append(m.skills, skill.CandidateSkill{UserID: userID, Name: name})
}

func (m *memStore) rows() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

type memJobs struct{ s *memStore }

func (r memJobs) FindByID(_ context.Context, id string) (job.Job, error) {
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

type memCompanies struct{ s *memStore }

func (r memCompanies) FindByID(_ context.Context, id string) (job.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return job.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

type memApplications struct{ s *memStore }

func (r memApplications) FindByID(_ context.Context, id string) (job.Application, error) {
	a, ok := r.s.applications[id]
	if !ok {
		return job.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

type memSkills struct{ s *memStore }

func (r memSkills) ListAll(context.Context) ([]skill.CandidateSkill, error) {
	r.s.mu.Lock()
	r.s.listAllHit++
	r.s.mu.Unlock()
	if r.s.skillsErr != nil {
		return nil, r.s.skillsErr
	}
	return r.s.skills, nil
}

func (r memSkills) FindByUserID(_ context.Context, userID string) ([]skill.CandidateSkill, error) {
	if r.s.skillsErr != nil {
		return nil, r.s.skillsErr
	}
	out := make([]skill.CandidateSkill, 0)
	for _, sk := range r.s.skills {
		if sk.UserID == userID {
			out = append(out, sk)
		}
	}
	return out, nil
}

type memNotifications struct{ s *memStore }

func (r memNotifications) Insert(_ context.Context, n notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.insertErr != nil {
		return r.s.insertErr
	}
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

func (r memNotifications) ListByUser(_ context.Context, f repository.NotificationListFilter) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]notification.Notification, 0)
	for _, n := range r.s.notifications {
		if n.UserID != f.UserID || (f.UnreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r memNotifications) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id && r.s.notifications[i].UserID == userID {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func newTestNotifier(s *memStore, pub NotificationPublisher) *NotifierService {
	var seq int
	var mu sync.Mutex
	return NewNotifier(NotifierDeps{
		Jobs:          memJobs{s},
		Companies:     memCompanies{s},
		Skills:        memSkills{s},
		Applications:  memApplications{s},
		Notifications: memNotifications{s},
		Publisher:     pub,
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("n-%d", seq)
		},
	})
}

// recordingEmitter keeps every event it receives. failFor makes Emit fail for
// the listed candidates.
type recordingEmitter struct {
	mu      sync.Mutex
	events  []event.Event
	failFor map[string]bool
}

func (e *recordingEmitter) Emit(_ context.Context, ev event.Event) error {
	var d event.JobMatchData
	_ = ev.Decode(&d)
	if e.failFor[d.CandidateID] {
		return errors.New("intake unreachable")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func (e *recordingEmitter) candidates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		var d event.JobMatchData
		_ = ev.Decode(&d)
		out = append(out, d.CandidateID)
	}
	sort.Strings(out)
	return out
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n notification.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

func jobApplication(id, jobID string) job.Application {
	return job.Application{ID: id, JobID: jobID, Status: "pending"}
}
