package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/processing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ============================================================
// Job Manager
// ============================================================

// JobTTL is how long a finished job stays queryable.
const JobTTL = 10 * time.Minute

type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

type Job struct {
	ID         string    `json:"jobId"`
	PlanID     string    `json:"planId"`
	Status     JobStatus `json:"status"`
	Step       int       `json:"step"`
	Steps      int       `json:"steps"`
	Message    string    `json:"message"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
}

// PlanStore persists finished plans.
type PlanStore interface {
	Save(ctx context.Context, rec *models.PlanRecord) error
}

// JobManager releases already generated plans after the processing delay,
// exposing the progress step while it waits.
type JobManager struct {
	mu       sync.Mutex
	jobs     map[string]*Job // jobID -> job
	store    PlanStore
	delay    time.Duration
	interval time.Duration
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewJobManager(store PlanStore, delay, interval time.Duration, logger *log.Logger) *JobManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &JobManager{
		jobs:     make(map[string]*Job),
		store:    store,
		delay:    delay,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit registers a job for rec. With no delay the plan is stored before
// Submit returns and the job is already completed.
func (m *JobManager) Submit(ctx context.Context, rec *models.PlanRecord) (Job, error) {
	if n := m.Prune(time.Now().Add(-JobTTL)); n > 0 {
		m.logger.Debug("pruned jobs", "count", n)
	}

	steps := processing.StepsFor(rec.Requirements.DirectionalCompliance)
	ticker := processing.NewTicker(steps, m.interval)
	first := ticker.Current()

	job := &Job{
		ID:        uuid.NewString(),
		PlanID:    rec.ID,
		Status:    JobProcessing,
		Step:      first.Step,
		Steps:     len(steps),
		Message:   first.Message,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	if m.delay <= 0 {
		err := m.finish(ctx, job.ID, rec)
		snapshot, _ := m.Get(job.ID)
		return snapshot, err
	}

	m.logger.Debug("job started", "job", job.ID, "plan", rec.ID, "delay", m.delay)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		err := ticker.Run(m.ctx, m.delay, func(t processing.Tick) {
			m.update(job.ID, func(j *Job) {
				j.Step = t.Step
				j.Message = t.Message
			})
		})
		if err != nil {
			m.fail(job.ID, fmt.Errorf("processing interrupted: %w", err))
			return
		}
		_ = m.finish(m.ctx, job.ID, rec)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	return *job, nil
}

func (m *JobManager) finish(ctx context.Context, jobID string, rec *models.PlanRecord) error {
	if err := m.store.Save(ctx, rec); err != nil {
		m.fail(jobID, err)
		return fmt.Errorf("save plan: %w", err)
	}

	m.update(jobID, func(j *Job) {
		j.Status = JobCompleted
		j.Step = j.Steps - 1
		j.Message = "Floor plan ready"
		j.FinishedAt = time.Now()
	})
	m.logger.Info("plan ready", "job", jobID, "plan", rec.ID, "rooms", len(rec.Plan.Rooms))
	return nil
}

func (m *JobManager) fail(jobID string, err error) {
	m.update(jobID, func(j *Job) {
		j.Status = JobFailed
		j.Error = err.Error()
		j.FinishedAt = time.Now()
	})
	m.logger.Error("job failed", "job", jobID, "err", err)
}

func (m *JobManager) update(jobID string, fn func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		fn(j)
	}
}

func (m *JobManager) Get(jobID string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[jobID]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Prune drops completed and failed jobs that finished before cutoff and
// returns how many were removed. Running jobs are kept.
func (m *JobManager) Prune(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, j := range m.jobs {
		if j.Status == JobProcessing || j.FinishedAt.After(cutoff) {
			continue
		}
		delete(m.jobs, id)
		removed++
	}
	return removed
}

// Wait blocks until every running job has finished.
func (m *JobManager) Wait() {
	m.wg.Wait()
}

// Close interrupts running jobs and waits for them.
func (m *JobManager) Close() {
	m.cancel()
	m.wg.Wait()
}
