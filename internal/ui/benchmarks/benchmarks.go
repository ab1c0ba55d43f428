// Package benchmarks provides timing estimates for stack resource creation.
package benchmarks

import (
	"time"

	"github.com/imamik/ec2stack/internal/provisioning/recipe"
)

// DefaultTimings are median CloudFormation creation durations per resource
// type (seconds).
var DefaultTimings = map[string]int{
	recipe.TypeSecurityGroup:   8,
	recipe.TypeRole:            20,
	recipe.TypePolicy:          20,
	recipe.TypeInstanceProfile: 130,
	recipe.TypeInstance:        40,
}

// ResourceOrder is the order in which the recipe's resources typically
// finish creating.
var ResourceOrder = []string{
	recipe.TypeSecurityGroup,
	recipe.TypeRole,
	recipe.TypePolicy,
	recipe.TypeInstanceProfile,
	recipe.TypeInstance,
}

// Record is the observed lifetime of one resource.
type Record struct {
	ResourceType string
	StartedAt    time.Time
	// EndedAt is nil while the resource is still in progress.
	EndedAt *time.Time
}

// EstimateRemaining calculates the estimated time remaining based on the
// resource currently in progress, its elapsed time, and completed records.
func EstimateRemaining(current string, elapsed time.Duration, history []Record) time.Duration {
	return EstimateRemainingWithScale(current, elapsed, history, PerformanceScale(current, elapsed, history))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(
	current string,
	elapsed time.Duration,
	history []Record,
	scale float64,
) time.Duration {
	var remaining time.Duration

	currentIdx := -1
	for i, t := range ResourceOrder {
		if t == current {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	if expected, ok := DefaultTimings[current]; ok {
		expectedDur := time.Duration(float64(time.Duration(expected)*time.Second) * scale)
		if expectedDur > elapsed {
			remaining += expectedDur - elapsed
		}
	}

	completed := make(map[string]bool)
	for _, rec := range history {
		if rec.EndedAt != nil {
			completed[rec.ResourceType] = true
		}
	}

	for i := currentIdx + 1; i < len(ResourceOrder); i++ {
		t := ResourceOrder[i]
		if completed[t] {
			continue
		}
		if expected, ok := DefaultTimings[t]; ok {
			remaining += time.Duration(float64(time.Duration(expected)*time.Second) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 40s, observed 60s => scale=1.5.
func PerformanceScale(current string, elapsed time.Duration, history []Record) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for _, rec := range history {
		expectedSecs, ok := DefaultTimings[rec.ResourceType]
		if !ok || rec.EndedAt == nil {
			continue
		}
		expectedTotal += time.Duration(expectedSecs) * time.Second
		actualTotal += rec.EndedAt.Sub(rec.StartedAt)
	}

	// An overrunning resource counts immediately so the ETA adapts quickly.
	if expectedSecs, ok := DefaultTimings[current]; ok && elapsed > 0 {
		expectedCurrent := time.Duration(expectedSecs) * time.Second
		if elapsed > expectedCurrent {
			expectedTotal += expectedCurrent
			actualTotal += elapsed
		}
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// ExpectedDuration returns the benchmark duration for a resource type.
func ExpectedDuration(resourceType string) (time.Duration, bool) {
	secs, ok := DefaultTimings[resourceType]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// TotalEstimate returns the total estimated creation time of the stack.
func TotalEstimate() time.Duration {
	var total time.Duration
	for _, t := range ResourceOrder {
		if secs, ok := DefaultTimings[t]; ok {
			total += time.Duration(secs) * time.Second
		}
	}
	return total
}
