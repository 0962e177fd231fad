package wizard

import "testing"

func TestBack(t *testing.T) {
	tests := []struct {
		name string
		from Step
		want Step
		ok   bool
	}{
		{"review to select", StepReview, StepSelect, true},
		{"select to input", StepSelect, StepInput, true},
		{"input has no back edge", StepInput, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Back(tt.from)
			if ok != tt.ok {
				t.Fatalf("Back(%s) ok = %v, want %v", tt.from, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Back(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestForward(t *testing.T) {
	tests := []struct {
		name string
		from Step
		want Step
		ok   bool
	}{
		{"input to select", StepInput, StepSelect, true},
		{"select to review", StepSelect, StepReview, true},
		{"review is terminal", StepReview, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Forward(tt.from)
			if ok != tt.ok {
				t.Fatalf("Forward(%s) ok = %v, want %v", tt.from, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Forward(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestBackForwardRoundTrip(t *testing.T) {
	for from, to := range forwardTransitions {
		back, ok := Back(to)
		if !ok || back != from {
			t.Fatalf("Back(%s) = %s, want %s", to, back, from)
		}
	}
}

func TestParseStep(t *testing.T) {
	for _, s := range []Step{StepInput, StepSelect, StepReview} {
		got, err := ParseStep(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseStep(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseStep("DONE"); err == nil {
		t.Fatal("expected error for unknown step")
	}
}
