package puppet

import (
	"encoding/json"
	"fmt"
)

// poseStep represents a single action in a pose script.
type poseStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Joint   string  `json:"joint,omitempty"`
	Axis    string  `json:"axis,omitempty"`
	Degrees float64 `json:"degrees,omitempty"`
	Seconds float32 `json:"seconds,omitempty"`
	Ease    string  `json:"ease,omitempty"`
	Frames  int     `json:"frames,omitempty"`

	axis Axis
}

// poseScriptFile is the top-level JSON structure for a pose script.
type poseScriptFile struct {
	Steps []poseStep `json:"steps"`
}

// PoseScript sequences pose edits, tweens and snapshots across frames. It
// advances one step per Figure.Update and waits for running tweens before
// moving on. Attach it with Figure.SetPoseScript.
//
// Actions: "rotate" (joint, axis, degrees), "tween" (joint, axis, degrees,
// seconds, ease), "wait" (frames) and "snapshot" (label).
type PoseScript struct {
	steps     []poseStep
	cursor    int
	waitCount int
	done      bool
}

// LoadPoseScript parses and validates a JSON pose script. Joint names are
// resolved when a step runs.
func LoadPoseScript(jsonData []byte) (*PoseScript, error) {
	var script poseScriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse pose script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse pose script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "rotate", "tween":
			if st.Joint == "" {
				return nil, fmt.Errorf("parse pose script: step %d: %s needs a joint", i, st.Action)
			}
			axis, err := ParseAxis(st.Axis)
			if err != nil {
				return nil, fmt.Errorf("parse pose script: step %d: %w", i, err)
			}
			st.axis = axis
			if st.Action == "tween" {
				if st.Seconds <= 0 {
					return nil, fmt.Errorf("parse pose script: step %d: tween needs positive seconds", i)
				}
				if _, err := EaseByName(st.Ease); err != nil {
					return nil, fmt.Errorf("parse pose script: step %d: %w", i, err)
				}
			}
		case "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse pose script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &PoseScript{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (s *PoseScript) Done() bool {
	return s.done
}

// step advances the script by one frame. Called from Figure.Update.
func (s *PoseScript) step(f *Figure) error {
	if s.done {
		return nil
	}
	if f.Tweening() {
		return nil
	}
	if s.waitCount > 0 {
		s.waitCount--
		return nil
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "rotate":
		if err := f.SetRotationDegrees(st.Joint, st.axis, st.Degrees); err != nil {
			return err
		}
	case "tween":
		j, ok := f.Joint(st.Joint)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownJoint, st.Joint)
		}
		fn, _ := EaseByName(st.Ease)
		f.AddTween(TweenRotation(j, st.axis, Deg2Rad(st.Degrees), st.Seconds, fn))
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		f.Snapshot(st.Label)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && !f.Tweening() {
		s.done = true
	}
	return nil
}
