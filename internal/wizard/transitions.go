// Package wizard implements the outreach wizard's step machine.
//
// Valid step graph:
//
//	INPUT ──► SELECT ──► REVIEW
//	  ▲          │  ▲        │
//	  └──────────┘  └────────┘
//
// Forward movement requires the step's async operation to succeed; back
// navigation is single-step and discards no data.
package wizard

import "fmt"

// Step identifies where a session sits in the wizard.
type Step string

const (
	StepInput  Step = "INPUT"
	StepSelect Step = "SELECT"
	StepReview Step = "REVIEW"
)

// backTransitions lists the single-step back edge per step. INPUT has none.
var backTransitions = map[Step]Step{
	StepSelect: StepInput,
	StepReview: StepSelect,
}

// forwardTransitions lists the one forward edge per step. There is no
// skip-ahead edge.
var forwardTransitions = map[Step]Step{
	StepInput:  StepSelect,
	StepSelect: StepReview,
}

// ParseStep converts a raw string to a Step, returning an error for unknown
// values.
func ParseStep(s string) (Step, error) {
	st := Step(s)
	switch st {
	case StepInput, StepSelect, StepReview:
		return st, nil
	}
	return "", fmt.Errorf("unknown wizard step %q", s)
}

// Back returns the step one position back, or false from INPUT.
func Back(from Step) (Step, bool) {
	to, ok := backTransitions[from]
	return to, ok
}

// Forward returns the next step, or false from REVIEW.
func Forward(from Step) (Step, bool) {
	to, ok := forwardTransitions[from]
	return to, ok
}
