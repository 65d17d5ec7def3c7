package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type recordingObserver struct {
	mu     sync.Mutex
	failed []string
}

func (o *recordingObserver) StepFailed(operation string, step string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, operation+"/"+step)
}

func TestRunnerToleratesBestEffortFailures(t *testing.T) {
	observer := &recordingObserver{}
	runner := Runner{Operation: "delete_thing", Observer: observer}
	var ran []string
	var mu sync.Mutex
	record := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			ran = append(ran, name)
			mu.Unlock()
			return err
		}
	}

	result, err := runner.Run(context.Background(),
		Concurrent(
			Step{Name: "a", BestEffort: true, Run: record("a", errors.New("boom"))},
			Step{Name: "b", BestEffort: true, Run: record("b", nil)},
		),
		Then(Step{Name: "c", Run: record("c", nil)}),
	)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, ran)
	require.Len(t, multierr.Errors(result.Tolerated), 1)
	require.Equal(t, []string{"delete_thing/a"}, observer.failed)
}

func TestRunnerStopsOnMustSucceedFailure(t *testing.T) {
	sentinel := errors.New("not found")
	laterRan := false

	_, err := Runner{Operation: "delete_thing"}.Run(context.Background(),
		Then(Step{Name: "load", Run: func(context.Context) error { return sentinel }}),
		Then(Step{Name: "later", Run: func(context.Context) error {
			laterRan = true
			return nil
		}}),
	)
	require.ErrorIs(t, err, sentinel)
	require.False(t, laterRan)
}
