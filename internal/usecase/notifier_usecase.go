package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/domain/event"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/notification"
	"jobboard/internal/infrastructure/metrics"
	applog "jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Notifier turns one domain event into at most one persisted notification.
type Notifier interface {
	HandleEvent(ctx context.Context, ev event.Event) error
}

// NotificationPublisher pushes a freshly written notification to live
// subscribers. Delivery is best effort.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, n notification.Notification) error
}

type NotifierDeps struct {
	Jobs          repository.JobRepository
	Companies     repository.CompanyRepository
	Skills        repository.SkillRepository
	Applications  repository.ApplicationRepository
	Notifications repository.NotificationRepository

	Publisher NotificationPublisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Tracer    trace.Tracer

	Now   func() time.Time
	NewID func() string
}

type NotifierService struct {
	jobs          repository.JobRepository
	companies     repository.CompanyRepository
	skills        repository.SkillRepository
	applications  repository.ApplicationRepository
	notifications repository.NotificationRepository

	publisher NotificationPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	tracer    trace.Tracer

	now   func() time.Time
	newID func() string
}

func NewNotifier(d NotifierDeps) *NotifierService {
	s := &NotifierService{
		jobs:          d.Jobs,
		companies:     d.Companies,
		skills:        d.Skills,
		applications:  d.Applications,
		notifications: d.Notifications,
		publisher:     d.Publisher,
		metrics:       d.Metrics,
		logger:        applog.OrNop(d.Logger),
		tracer:        d.Tracer,
		now:           d.Now,
		newID:         d.NewID,
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("jobboard/notifier")
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// HandleEvent dispatches on the event action. Unknown actions are logged and
// succeed without writing anything.
func (s *NotifierService) HandleEvent(ctx context.Context, ev event.Event) (err error) {
	ctx, span := s.tracer.Start(ctx, "notifier.HandleEvent",
		trace.WithAttributes(attribute.String("event.action", string(ev.Action))))
	defer span.End()

	start := s.now()
	action, perr := event.ParseAction(string(ev.Action))
	if perr != nil {
		s.logger.Warn("ignoring unrecognized notification action", zap.String("action", string(ev.Action)))
		s.metrics.EventsHandled.WithLabelValues("unknown", "ignored").Inc()
		return nil
	}

	defer func() {
		s.metrics.EventDuration.WithLabelValues(string(action)).Observe(s.now().Sub(start).Seconds())
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		s.metrics.EventsHandled.WithLabelValues(string(action), outcome).Inc()
	}()

	switch action {
	case event.ActionJobApplication:
		var d event.JobApplicationData
		if err := ev.Decode(&d); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return s.handleJobApplication(ctx, d)
	case event.ActionJobMatch:
		var d event.JobMatchData
		if err := ev.Decode(&d); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return s.handleJobMatch(ctx, d)
	case event.ActionApplicationUpdate:
		var d event.ApplicationUpdateData
		if err := ev.Decode(&d); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return s.handleApplicationUpdate(ctx, d)
	default:
		return nil
	}
}

// handleJobApplication notifies the employer owning the job's company. The
// employer id is only stored in the company metadata.
func (s *NotifierService) handleJobApplication(ctx context.Context, d event.JobApplicationData) error {
	if strings.TrimSpace(d.JobID) == "" {
		return fmt.Errorf("%w: jobId is required", ErrInvalidInput)
	}

	j, err := s.jobs.FindByID(ctx, d.JobID)
	if err != nil {
		return mapLookupError(err, "job", d.JobID)
	}

	company, err := s.companies.FindByID(ctx, j.CompanyID)
	if err != nil {
		return mapLookupError(err, "company", j.CompanyID)
	}

	employerID, ok := company.EmployerUserID()
	if !ok {
		return fmt.Errorf("%w: company %s has no metadata.user_id", ErrEmployerNotFound, company.ID)
	}

	return s.create(ctx, notification.JobApplicationDraft(employerID, d.ApplicantName, j.Title, d.JobID))
}

// handleJobMatch re-checks the match before writing, so a caller that did not
// match (or matched differently) cannot create a job_match notification.
func (s *NotifierService) handleJobMatch(ctx context.Context, d event.JobMatchData) error {
	if strings.TrimSpace(d.JobID) == "" || strings.TrimSpace(d.CandidateID) == "" {
		return fmt.Errorf("%w: jobId and candidateId are required", ErrInvalidInput)
	}

	j, err := s.jobs.FindByID(ctx, d.JobID)
	if err != nil {
		return mapLookupError(err, "job", d.JobID)
	}

	skills, err := s.skills.FindByUserID(ctx, d.CandidateID)
	if err != nil {
		return fmt.Errorf("load skills of %s: %w", d.CandidateID, err)
	}
	if len(skills) == 0 {
		s.logger.Debug("job_match skipped, candidate has no skills",
			zap.String("job_id", d.JobID), zap.String("candidate_id", d.CandidateID))
		return nil
	}

	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	if !matching.Matches(j.RequirementsText(), names) {
		s.logger.Debug("job_match skipped, no skill matches requirements",
			zap.String("job_id", d.JobID), zap.String("candidate_id", d.CandidateID))
		return nil
	}

	return s.create(ctx, notification.JobMatchDraft(d.CandidateID, j.Title, d.JobID))
}

func (s *NotifierService) handleApplicationUpdate(ctx context.Context, d event.ApplicationUpdateData) error {
	if strings.TrimSpace(d.ApplicationID) == "" || strings.TrimSpace(d.CandidateID) == "" {
		return fmt.Errorf("%w: applicationId and candidateId are required", ErrInvalidInput)
	}

	app, err := s.applications.FindByID(ctx, d.ApplicationID)
	if err != nil {
		return mapLookupError(err, "application", d.ApplicationID)
	}

	j, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return mapLookupError(err, "job", app.JobID)
	}

	return s.create(ctx, notification.ApplicationUpdateDraft(d.CandidateID, j.Title, d.Status, d.ApplicationID))
}

// create is the single write path for notification rows.
func (s *NotifierService) create(ctx context.Context, d notification.Draft) error {
	n := notification.Notification{
		ID:        s.newID(),
		UserID:    d.UserID,
		Title:     d.Title,
		Message:   d.Message,
		Type:      d.Type,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}
	if d.RelatedID != "" {
		rel := d.RelatedID
		n.RelatedID = &rel
	}

	if err := s.notifications.Insert(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	s.metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	s.logger.Info("notification created",
		zap.String("notification_id", n.ID),
		zap.String("user_id", n.UserID),
		zap.String("type", string(n.Type)),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(ctx, n); err != nil {
			s.logger.Warn("live delivery failed",
				zap.String("notification_id", n.ID),
				zap.String("user_id", n.UserID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func mapLookupError(err error, entity, id string) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	case errors.Is(err, repository.ErrCompanyNotFound):
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	case errors.Is(err, repository.ErrApplicationNotFound):
		return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	default:
		return fmt.Errorf("load %s %s: %w", entity, id, err)
	}
}

var _ Notifier = (*NotifierService)(nil)
