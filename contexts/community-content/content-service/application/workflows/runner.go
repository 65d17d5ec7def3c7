package workflows

import (
	"context"
	"fmt"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/ports"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Step is one unit of a multi-resource mutation. A failing must-succeed step
// stops the run; a failing best-effort step is logged, counted and skipped.
type Step struct {
	Name       string
	BestEffort bool
	Run        func(ctx context.Context) error
}

// Stage is a set of steps with no ordering between them.
type Stage []Step

// Then builds a stage holding a single step.
func Then(step Step) Stage {
	return Stage{step}
}

// Concurrent builds a stage whose steps run in parallel.
func Concurrent(steps ...Step) Stage {
	return Stage(steps)
}

// Result reports the best-effort failures a successful run tolerated.
type Result struct {
	Tolerated error
}

type Runner struct {
	Operation string
	Observer  ports.CascadeObserver
	Logger    *slog.Logger
}

// Run executes stages in order. Stages after a failing must-succeed step are
// not started.
func (r Runner) Run(ctx context.Context, stages ...Stage) (Result, error) {
	logger := application.ResolveLogger(r.Logger)
	var tolerated error

	for _, stage := range stages {
		failures := make([]error, len(stage))
		group, groupCtx := errgroup.WithContext(ctx)
		for i, step := range stage {
			group.Go(func() error {
				if err := step.Run(groupCtx); err != nil {
					failures[i] = err
					if !step.BestEffort {
						return fmt.Errorf("%s: %w", step.Name, err)
					}
				}
				return nil
			})
		}
		stageErr := group.Wait()

		for i, step := range stage {
			if failures[i] == nil || !step.BestEffort {
				continue
			}
			tolerated = multierr.Append(tolerated, fmt.Errorf("%s: %w", step.Name, failures[i]))
			if r.Observer != nil {
				r.Observer.StepFailed(r.Operation, step.Name)
			}
			logger.Warn("cascade step failed, continuing",
				"event", "content_cascade_step_tolerated",
				"module", "community-content/content-service",
				"layer", "application",
				"operation", r.Operation,
				"step", step.Name,
				"error", failures[i].Error(),
			)
		}

		if stageErr != nil {
			logger.Error("cascade aborted",
				"event", "content_cascade_aborted",
				"module", "community-content/content-service",
				"layer", "application",
				"operation", r.Operation,
				"error", stageErr.Error(),
			)
			return Result{Tolerated: tolerated}, stageErr
		}
	}

	if tolerated != nil {
		logger.Warn("cascade completed with tolerated failures",
			"event", "content_cascade_completed_degraded",
			"module", "community-content/content-service",
			"layer", "application",
			"operation", r.Operation,
			"failures", len(multierr.Errors(tolerated)),
			"error", tolerated.Error(),
		)
	}
	return Result{Tolerated: tolerated}, nil
}
