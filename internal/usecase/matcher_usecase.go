package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobboard/internal/dispatch"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/matching"
	"jobboard/internal/infrastructure/metrics"
	applog "jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MatchReport summarizes one matcher run.
type MatchReport struct {
	JobID    string
	Matched  []string
	Emitted  int
	Failed   int
	Skipped  bool
	LoadFail bool
}

type MatcherDeps struct {
	Skills  repository.SkillRepository
	Emitter EventEmitter

	// Jobs resolves requirements when a trigger only names the job.
	Jobs repository.JobRepository

	Workers   int
	RateLimit int
	// Timeout bounds detached runs started by Dispatch.
	Timeout time.Duration

	Metrics *metrics.Metrics
	Logger  *zap.Logger
	Tracer  trace.Tracer
}

type MatcherService struct {
	skills  repository.SkillRepository
	emitter EventEmitter
	jobs    repository.JobRepository

	workers   int
	rateLimit int
	timeout   time.Duration

	metrics *metrics.Metrics
	logger  *zap.Logger
	tracer  trace.Tracer

	wg sync.WaitGroup
}

func NewMatcher(d MatcherDeps) *MatcherService {
	m := &MatcherService{
		skills:    d.Skills,
		emitter:   d.Emitter,
		jobs:      d.Jobs,
		workers:   d.Workers,
		rateLimit: d.RateLimit,
		timeout:   d.Timeout,
		metrics:   d.Metrics,
		logger:    applog.OrNop(d.Logger),
		tracer:    d.Tracer,
	}
	if m.workers <= 0 {
		m.workers = 8
	}
	if m.timeout <= 0 {
		m.timeout = 2 * time.Minute
	}
	if m.metrics == nil {
		m.metrics = metrics.New(nil)
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer("jobboard/matcher")
	}
	return m
}

// MatchAndNotify emits one job_match event per candidate whose skills appear
// in requirements. It waits for every emit to finish and never fails: load
// and delivery errors are logged and counted in the report.
func (m *MatcherService) MatchAndNotify(ctx context.Context, jobID, requirements string) MatchReport {
	ctx, span := m.tracer.Start(ctx, "matcher.MatchAndNotify",
		trace.WithAttributes(attribute.String("job.id", jobID)))
	defer span.End()

	report := MatchReport{JobID: jobID}
	log := m.logger.With(zap.String("job_id", jobID))

	if strings.TrimSpace(requirements) == "" {
		report.Skipped = true
		m.metrics.MatchRuns.WithLabelValues("skipped").Inc()
		return report
	}

	rows, err := m.skills.ListAll(ctx)
	if err != nil {
		log.Error("load candidate skills", zap.Error(err))
		report.LoadFail = true
		m.metrics.MatchRuns.WithLabelValues("load_failed").Inc()
		return report
	}
	if len(rows) == 0 {
		report.Skipped = true
		m.metrics.MatchRuns.WithLabelValues("skipped").Inc()
		return report
	}

	pairs := make([]matching.SkillPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, matching.SkillPair{CandidateID: r.UserID, SkillName: r.Name})
	}
	report.Matched = matching.MatchCandidates(requirements, pairs)
	span.SetAttributes(attribute.Int("match.candidates", len(report.Matched)))
	if len(report.Matched) == 0 {
		m.metrics.MatchRuns.WithLabelValues("no_match").Inc()
		log.Debug("no candidate matched")
		return report
	}

	tasks := make([]dispatch.Task, 0, len(report.Matched))
	for _, candidateID := range report.Matched {
		ev := event.NewJobMatch(jobID, candidateID)
		tasks = append(tasks, dispatch.Task{
			Key: candidateID,
			Run: func(ctx context.Context) error {
				return m.emitter.Emit(ctx, ev)
			},
		})
	}

	for _, res := range dispatch.RunAll(ctx, m.workers, m.rateLimit, tasks) {
		if res.Err != nil {
			report.Failed++
			m.metrics.MatchEmits.WithLabelValues("error").Inc()
			log.Warn("job_match delivery failed",
				zap.String("candidate_id", res.Key),
				zap.Error(res.Err),
			)
			continue
		}
		report.Emitted++
		m.metrics.MatchEmits.WithLabelValues("ok").Inc()
	}
	// Tasks that never started because ctx ended count as failures.
	if lost := len(report.Matched) - report.Emitted - report.Failed; lost > 0 {
		report.Failed += lost
		m.metrics.MatchEmits.WithLabelValues("error").Add(float64(lost))
		log.Warn("job_match delivery abandoned", zap.Int("candidates", lost), zap.Error(ctx.Err()))
	}

	outcome := "ok"
	if report.Failed > 0 {
		outcome = "partial"
	}
	m.metrics.MatchRuns.WithLabelValues(outcome).Inc()
	log.Info("matcher run finished",
		zap.Int("matched", len(report.Matched)),
		zap.Int("emitted", report.Emitted),
		zap.Int("failed", report.Failed),
	)
	return report
}

// Dispatch starts MatchAndNotify in the background and returns at once. The
// run keeps ctx values but not its cancellation.
func (m *MatcherService) Dispatch(ctx context.Context, jobID, requirements string) {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		m.MatchAndNotify(runCtx, jobID, requirements)
	}()
}

// Wait blocks until every run started by Dispatch has finished.
func (m *MatcherService) Wait() {
	m.wg.Wait()
}

// DispatchForJob validates the trigger and starts a detached run. When
// requirements is nil they are read from the stored job.
func (m *MatcherService) DispatchForJob(ctx context.Context, jobID string, requirements *string) error {
	req, err := m.resolveRequirements(ctx, jobID, requirements)
	if err != nil {
		return err
	}
	m.Dispatch(ctx, jobID, req)
	return nil
}

// RunForJob is the blocking counterpart of DispatchForJob.
func (m *MatcherService) RunForJob(ctx context.Context, jobID string, requirements *string) (MatchReport, error) {
	req, err := m.resolveRequirements(ctx, jobID, requirements)
	if err != nil {
		return MatchReport{JobID: jobID}, err
	}
	return m.MatchAndNotify(ctx, jobID, req), nil
}

func (m *MatcherService) resolveRequirements(ctx context.Context, jobID string, requirements *string) (string, error) {
	if strings.TrimSpace(jobID) == "" {
		return "", fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if requirements != nil {
		return *requirements, nil
	}
	if m.jobs == nil {
		return "", fmt.Errorf("%w: no job store configured", ErrInternal)
	}
	j, err := m.jobs.FindByID(ctx, jobID)
	if err != nil {
		return "", mapLookupError(err, "job", jobID)
	}
	return j.RequirementsText(), nil
}
