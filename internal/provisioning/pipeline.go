package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially.
// The first failing phase stops the run; its error is wrapped with the
// phase name and otherwise returned unchanged.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)
		LogPhaseStart(ctx.Observer, phase.Name())

		err := phase.Provision(ctx)
		elapsed := time.Since(phaseStart)
		ctx.Metrics.ObservePhase(phase.Name(), elapsed, err)

		if err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, elapsed.Round(time.Millisecond))
		LogPhaseComplete(ctx.Observer, phase.Name(), elapsed)
	}

	ctx.Metrics.SetDeclaredResources(len(ctx.State.Stack.Resources()))
	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
