package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/atomiclab/atomic/internal/ai"
	"github.com/atomiclab/atomic/internal/clock"
	"github.com/atomiclab/atomic/internal/compare"
	"github.com/atomiclab/atomic/internal/config"
	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/ctxutil"
	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
	"github.com/atomiclab/atomic/internal/flock"
	"github.com/atomiclab/atomic/internal/logstream"
	"github.com/atomiclab/atomic/internal/metrics"
	"github.com/atomiclab/atomic/internal/reference"
	"github.com/atomiclab/atomic/internal/relax"
	"github.com/atomiclab/atomic/internal/report"
	"github.com/atomiclab/atomic/internal/session"
	"github.com/atomiclab/atomic/internal/surface"
)

// StructureProvider builds the initial surface for a task.
type StructureProvider interface {
	Build(ctx context.Context, element, face string) (*domain.Structure, error)
}

// Orchestrator drives tasks through the pipeline stages. Construct with
// NewOrchestrator; the zero value is not usable.
type Orchestrator struct {
	cfg      *config.Config
	provider StructureProvider
	engine   relax.Engine
	refs     reference.Provider
	discuss  ai.Generator // nil when no model is configured
	sessions *session.Registry
	logs     *logstream.Registry
	clk      clock.Clock
	sem      *semaphore.Weighted

	mu       sync.RWMutex
	tasks    map[string]*domain.Task
	reports  map[string]*domain.Report
	failures map[string]*domain.FailureDescriptor
}

// Options configure an Orchestrator.
type Options struct {
	Config    *config.Config
	Provider  StructureProvider
	Engine    relax.Engine
	Reference reference.Provider
	Discuss   ai.Generator
	Sessions  *session.Registry
	Logs      *logstream.Registry
	Clock     clock.Clock
}

// NewOrchestrator wires the pipeline together. Config, Provider, Engine,
// and Reference are required; a nil Discuss degrades every discussion to
// the placeholder.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Config == nil {
		return nil, errors.Wrap(errors.ErrConfigNil, "new orchestrator")
	}
	if opts.Provider == nil || opts.Engine == nil || opts.Reference == nil {
		return nil, errors.Wrap(errors.ErrInvalidSpec, "new orchestrator: missing collaborator")
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewRegistry()
	}
	if opts.Logs == nil {
		opts.Logs = logstream.NewRegistry()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	maxConcurrent := opts.Config.Relax.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = constants.DefaultMaxConcurrentRelaxations
	}

	return &Orchestrator{
		cfg:      opts.Config,
		provider: opts.Provider,
		engine:   opts.Engine,
		refs:     opts.Reference,
		discuss:  opts.Discuss,
		sessions: opts.Sessions,
		logs:     opts.Logs,
		clk:      opts.Clock,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		tasks:    make(map[string]*domain.Task),
		reports:  make(map[string]*domain.Report),
		failures: make(map[string]*domain.FailureDescriptor),
	}, nil
}

// Sessions exposes the session registry for CLI queries.
func (o *Orchestrator) Sessions() *session.Registry { return o.sessions }

// Logs exposes the log stream registry for CLI polling.
func (o *Orchestrator) Logs() *logstream.Registry { return o.logs }

// Task returns a copy of a registered task.
func (o *Orchestrator) Task(taskID string) (domain.Task, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	t, ok := o.tasks[taskID]
	if !ok {
		return domain.Task{}, errors.Wrapf(errors.ErrTaskNotFound, "task %s", taskID)
	}
	return *t, nil
}

// Failure returns the failure descriptor for a failed task, or nil.
func (o *Orchestrator) Failure(taskID string) *domain.FailureDescriptor {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.failures[taskID]
}

// Report returns the assembled report for a succeeded full-pipeline
// task, or nil for failed, structure-only, or unknown tasks.
func (o *Orchestrator) Report(taskID string) *domain.Report {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.reports[taskID]
}

// Submit runs the full pipeline for a surface spec synchronously and
// returns the terminal task with its report. The report is nil for
// structure-only runs, which produce no metrics to report on. A failed
// stage leaves partial artifacts on disk and the task in the Failed
// state; the returned error carries the stage failure and the
// descriptor is retrievable through Failure.
func (o *Orchestrator) Submit(ctx context.Context, spec domain.SurfaceSpec, sessionID string) (*domain.Task, *domain.Report, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, nil, err
	}
	if !surface.IsSupported(spec.Element, spec.Face) {
		return nil, nil, errors.Wrapf(errors.ErrInvalidSpec,
			"unsupported surface %s(%s): known surfaces are %s", spec.Element, spec.Face,
			strings.Join(surface.KnownSurfaces(), ", "))
	}
	if spec.Steps <= 0 {
		spec.Steps = o.cfg.Relax.Steps
	}
	if spec.Steps <= 0 {
		spec.Steps = constants.DefaultRelaxationSteps
	}

	sess, _ := o.sessions.GetOrCreate(sessionID)
	task, err := o.newTask(spec, sess.ID)
	if err != nil {
		return nil, nil, err
	}
	o.register(task)

	log := zerolog.Ctx(ctx).With().
		Str("task_id", task.ID).
		Str("session_id", sess.ID).
		Str("element", spec.Element).
		Str("face", spec.Face).
		Logger()
	ctx = log.WithContext(ctx)

	rep, err := o.run(ctx, task)
	if err != nil {
		return task, nil, err
	}
	if rep != nil {
		o.mu.Lock()
		o.reports[task.ID] = rep
		o.mu.Unlock()
	}

	o.recordTerminal(task)
	log.Info().Str("status", task.Status.String()).Msg("task finished")
	return task, rep, nil
}

// run executes the stages. It returns a non-nil error only when the task
// failed; degradable problems (reference, discussion) never fail a task.
func (o *Orchestrator) run(ctx context.Context, task *domain.Task) (*domain.Report, error) {
	spec := task.Spec
	artifacts := map[string]string{}

	// Generation.
	if err := o.transition(ctx, task, constants.TaskStatusGenerating, "structure generation started"); err != nil {
		return nil, err
	}
	o.stageLog(task.ID, "generating %s(%s) surface", spec.Element, spec.Face)

	if err := os.MkdirAll(task.OutputDir, 0o750); err != nil {
		return nil, o.fail(ctx, task, errors.Wrapf(err, "create output dir %s", task.OutputDir))
	}
	lock, err := flock.LockDir(task.OutputDir)
	if err != nil {
		return nil, o.fail(ctx, task, err)
	}
	defer func() { _ = lock.Unlock() }()

	unrelaxed, err := o.provider.Build(ctx, spec.Element, spec.Face)
	if err != nil {
		return nil, o.fail(ctx, task, errors.Wrap(errors.ErrGeneration, err.Error()))
	}

	unrelaxedPath := filepath.Join(task.OutputDir,
		fmt.Sprintf(constants.UnrelaxedXYZFormat, spec.Element, spec.Face))
	if err := surface.WriteXYZFile(unrelaxedPath, unrelaxed); err != nil {
		return nil, o.fail(ctx, task, err)
	}
	artifacts["unrelaxed_xyz"] = unrelaxedPath
	o.stageLog(task.ID, "wrote %s (%d atoms)", filepath.Base(unrelaxedPath), unrelaxed.NumAtoms())

	if !spec.Relax {
		// Structure-only run ends here.
		if err := o.transition(ctx, task, constants.TaskStatusSucceeded, "structure-only run complete"); err != nil {
			return nil, err
		}
		o.stageLog(task.ID, "structure-only run complete")
		return nil, nil
	}

	// Relaxation, bounded by the concurrency semaphore.
	if err := o.transition(ctx, task, constants.TaskStatusRelaxing, "relaxation started"); err != nil {
		return nil, err
	}
	o.stageLog(task.ID, "relaxing for up to %d steps", spec.Steps)

	relaxed, traj, err := o.relaxBounded(ctx, unrelaxed, spec.Steps)
	if err != nil {
		return nil, o.fail(ctx, task, errors.Wrap(errors.ErrRelaxation, err.Error()))
	}

	relaxedPath := filepath.Join(task.OutputDir,
		fmt.Sprintf(constants.RelaxedXYZFormat, spec.Element, spec.Face))
	if err := surface.WriteXYZFile(relaxedPath, relaxed); err != nil {
		return nil, o.fail(ctx, task, err)
	}
	artifacts["relaxed_xyz"] = relaxedPath

	pngPath := filepath.Join(task.OutputDir,
		fmt.Sprintf(constants.RelaxationPNGFormat, spec.Element, spec.Face))
	if err := relax.WriteTrajectoryPNG(pngPath, traj); err != nil {
		return nil, o.fail(ctx, task, err)
	}
	artifacts["relaxation_png"] = pngPath
	o.stageLog(task.ID, "%s", relax.TrajectorySummary(traj))

	// Metric extraction.
	if err := o.transition(ctx, task, constants.TaskStatusExtracting, "metric extraction started"); err != nil {
		return nil, err
	}

	spacing, err := surface.BulkInterlayerSpacing(spec.Element, spec.Face)
	if err != nil {
		return nil, o.fail(ctx, task, err)
	}
	metricSet, err := metrics.Extract(unrelaxed, relaxed, spacing)
	if err != nil {
		return nil, o.fail(ctx, task, err)
	}
	o.stageLog(task.ID, "d12 %+.2f%%, d23 %+.2f%%, %d layers",
		metricSet.D12ChangePct, metricSet.D23ChangePct, metricSet.NumLayers)

	// Comparison. A reference lookup failure degrades to NO_REFERENCE.
	if err := o.transition(ctx, task, constants.TaskStatusComparing, "literature comparison started"); err != nil {
		return nil, err
	}

	records, err := o.refs.Lookup(ctx, spec.Element, spec.Face)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("reference lookup failed, comparing without references")
		o.stageLog(task.ID, "reference lookup failed: %v", err)
		records = nil
	}
	verdict := compare.Score(metricSet, records, compare.FromConfig(o.cfg.Compare))
	o.stageLog(task.ID, "agreement: %s", strings.ToUpper(verdict.Label.String()))

	// Reporting, including the best-effort discussion.
	if err := o.transition(ctx, task, constants.TaskStatusReporting, "report assembly started"); err != nil {
		return nil, err
	}

	discussion, degraded := o.generateDiscussion(ctx, task, ai.DiscussionRequest{
		Element:   spec.Element,
		Face:      spec.Face,
		NumAtoms:  unrelaxed.NumAtoms(),
		Converged: traj.Converged,
		Metrics:   metricSet,
		Verdict:   verdict,
	})

	rep, err := report.Assemble(report.Input{
		TaskID:             task.ID,
		SessionID:          task.SessionID,
		Element:            spec.Element,
		Face:               spec.Face,
		Structure:          unrelaxed,
		Trajectory:         traj,
		Metrics:            metricSet,
		Verdict:            verdict,
		Discussion:         discussion,
		DiscussionDegraded: degraded,
		Artifacts:          artifacts,
		GeneratedAt:        o.clk.Now(),
	})
	if err != nil {
		return nil, o.fail(ctx, task, err)
	}
	reportPath, err := report.WriteFile(task.OutputDir, rep)
	if err != nil {
		return nil, o.fail(ctx, task, err)
	}
	o.stageLog(task.ID, "wrote %s", filepath.Base(reportPath))

	if err := o.transition(ctx, task, constants.TaskStatusSucceeded, "pipeline complete"); err != nil {
		return nil, err
	}
	return rep, nil
}

// relaxBounded runs the engine under the concurrency semaphore.
func (o *Orchestrator) relaxBounded(ctx context.Context, s *domain.Structure, steps int) (*domain.Structure, *domain.Trajectory, error) {
	if err := o.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, errors.Wrap(err, "acquire relaxation slot")
	}
	defer o.sem.Release(1)

	return o.engine.Relax(ctx, s, steps)
}

// generateDiscussion runs the discussion generator with the retry-once
// policy already applied by the wrapper and degrades to the placeholder
// on failure or when no model is configured.
func (o *Orchestrator) generateDiscussion(ctx context.Context, task *domain.Task, req ai.DiscussionRequest) (string, bool) {
	if o.discuss == nil {
		o.stageLog(task.ID, "no discussion model configured, using placeholder")
		return ai.PlaceholderDiscussion, true
	}

	text, err := o.discuss.Discuss(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("discussion generation degraded to placeholder")
		o.stageLog(task.ID, "discussion generation failed, using placeholder: %v", err)
		return ai.PlaceholderDiscussion, true
	}

	if ai.CategoryMismatch(text, req.Verdict) {
		zerolog.Ctx(ctx).Warn().
			Str("label", req.Verdict.Label.String()).
			Msg("discussion text claims a different agreement category than computed")
		o.stageLog(task.ID, "warning: discussion text disagrees with the computed %s verdict",
			strings.ToUpper(req.Verdict.Label.String()))
	}
	return text, false
}

// newTask builds a pending task with a timestamped ID and its output
// directory path.
func (o *Orchestrator) newTask(spec domain.SurfaceSpec, sessionID string) (*domain.Task, error) {
	now := o.clk.Now().UTC()
	id := fmt.Sprintf("task-%s-%s", now.Format("20060102-150405"), uuid.NewString()[:4])

	outputRoot, err := config.ResolveOutputDir(o.cfg)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(outputRoot, fmt.Sprintf("%s_%s_%s", spec.Element, spec.Face, id))

	return &domain.Task{
		ID:        id,
		SessionID: sessionID,
		Spec:      spec,
		Status:    constants.TaskStatusPending,
		OutputDir: dir,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (o *Orchestrator) register(task *domain.Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tasks[task.ID] = task
}

// recordTerminal appends the finished task to its session history.
func (o *Orchestrator) recordTerminal(task *domain.Task) {
	if err := o.sessions.Record(task.SessionID, task); err != nil {
		// Session bookkeeping must not fail a finished task.
		o.stageLog(task.ID, "session record failed: %v", err)
	}
}

func (o *Orchestrator) transition(ctx context.Context, task *domain.Task, to constants.TaskStatus, reason string) error {
	if err := Transition(ctx, task, to, reason); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().
		Str("task_id", task.ID).
		Str("status", to.String()).
		Msg(reason)
	return nil
}

// fail transitions the task to Failed, records the failure descriptor
// with a log excerpt, and appends the terminal task to its session. The
// stage recorded is the status the task held when the failure occurred.
func (o *Orchestrator) fail(ctx context.Context, task *domain.Task, cause error) error {
	stage := task.Status
	o.stageLog(task.ID, "stage %s failed: %v", stage, cause)
	zerolog.Ctx(ctx).Error().Err(cause).Str("stage", stage.String()).Msg("task failed")

	if err := Transition(ctx, task, constants.TaskStatusFailed, fmt.Sprintf("%s: %v", stage, cause)); err != nil {
		return errors.Wrapf(cause, "additionally failed to record failure: %v", err)
	}

	o.mu.Lock()
	o.failures[task.ID] = &domain.FailureDescriptor{
		TaskID:   task.ID,
		Stage:    stage,
		Message:  cause.Error(),
		LogLines: o.logs.Poll(task.ID, 20),
	}
	o.mu.Unlock()

	o.recordTerminal(task)
	return cause
}

// stageLog appends a formatted line to the task's poll stream.
func (o *Orchestrator) stageLog(taskID, format string, args ...any) {
	o.logs.Append(taskID, fmt.Sprintf(format, args...))
}
