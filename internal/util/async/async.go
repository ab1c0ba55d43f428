package async

import (
	"context"
	"fmt"
)

// Task is a named operation run by RunParallel.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel runs every task concurrently and waits for all of them.
// The first error observed is returned, prefixed with the task name.
//
// Example:
//
//	err := RunParallel(ctx, []Task{
//	    {Name: "describe stack", Func: describe},
//	    {Name: "stack events", Func: events},
//	})
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	resultChan := make(chan result, len(tasks))
	for _, task := range tasks {
		go func() {
			resultChan <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var firstError error
	for range len(tasks) {
		res := <-resultChan
		if res.err != nil && firstError == nil {
			firstError = fmt.Errorf("%s: %w", res.name, res.err)
		}
	}
	return firstError
}
