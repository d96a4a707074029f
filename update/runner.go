package update

import (
	"fmt"

	"go.uber.org/zap"

	"whiskertint/model"
)

// Func runs one update and reports what it changed.
type Func func() (model.Report, error)

type job struct {
	name string
	run  Func
}

// Runner executes updates in order and stops at the first failure.
// Files written by earlier jobs stay written.
type Runner struct {
	jobs       []job
	log        *zap.Logger
	onComplete func(model.Report)
}

// NewRunner creates an empty Runner.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Add queues fn under name.
func (r *Runner) Add(name string, fn Func) {
	r.jobs = append(r.jobs, job{name: name, run: fn})
}

// AddTargets queues the updaters of u for each target.
func (r *Runner) AddTargets(u *Updater, targets ...Target) {
	for _, t := range targets {
		r.Add(string(t), func() (model.Report, error) { return u.Run(t) })
	}
}

// Len returns the number of queued jobs.
func (r *Runner) Len() int {
	return len(r.jobs)
}

// SetOnComplete registers a callback invoked after each successful job.
func (r *Runner) SetOnComplete(fn func(model.Report)) {
	r.onComplete = fn
}

// Run executes all queued jobs. It returns the reports of the jobs that
// finished before the first error.
func (r *Runner) Run() ([]model.Report, error) {
	reports := make([]model.Report, 0, len(r.jobs))
	for _, j := range r.jobs {
		r.log.Debug("update started", zap.String("target", j.name))

		report, err := j.run()
		if err != nil {
			r.log.Error("update failed", zap.String("target", j.name), zap.Error(err))
			return reports, fmt.Errorf("update %s: %w", j.name, err)
		}

		reports = append(reports, report)
		if r.onComplete != nil {
			r.onComplete(report)
		}
	}
	return reports, nil
}
