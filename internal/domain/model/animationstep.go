package model

import "slices"

// AnimationStep is one keyframe of a mask animation. Duration carries no unit;
// the rendering side decides whether it is seconds or milliseconds. Variables
// are applied positionally and may repeat.
type AnimationStep struct {
	Easing    string   `json:"easing"`
	Duration  float64  `json:"duration"`
	Variables []string `json:"variables"`
}

// Equal reports whether s and other hold the same values.
func (s AnimationStep) Equal(other AnimationStep) bool {
	return s.Easing == other.Easing &&
		s.Duration == other.Duration &&
		slices.Equal(s.Variables, other.Variables)
}

// CloneAnimationSteps returns a deep copy of steps, never nil.
func CloneAnimationSteps(steps []AnimationStep) []AnimationStep {
	out := make([]AnimationStep, len(steps))
	for i, s := range steps {
		out[i] = AnimationStep{
			Easing:    s.Easing,
			Duration:  s.Duration,
			Variables: CloneVariables(s.Variables),
		}
	}
	return out
}
