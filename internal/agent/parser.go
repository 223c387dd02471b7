package agent

import (
	"fmt"
	"regexp"
	"strings"
)

// Parsing of model output in the reason-act protocol. A step either names an
// action with its input, or declares a final answer. Declaring both at once
// is malformed, as is declaring neither.

var (
	actionRE      = regexp.MustCompile(`(?m)^\s*Action:\s*(.+?)\s*$`)
	actionInputRE = regexp.MustCompile(`(?ms)^\s*Action Input:\s*(.+?)\s*(?:^\s*Observation:|\z)`)
	finalAnswerRE = regexp.MustCompile(`(?ms)Final Answer:\s*(.+)\z`)
)

// step is one parsed model response.
type step struct {
	final       bool
	finalAnswer string
	action      string
	actionInput string
}

// parseStep interprets one model response. The final answer wins only when
// no action is present; a response with both is an action step cut short.
func parseStep(text string) (step, error) {
	actionM := actionRE.FindStringSubmatch(text)
	finalM := finalAnswerRE.FindStringSubmatch(text)

	if actionM == nil && finalM != nil {
		return step{final: true, finalAnswer: strings.TrimSpace(finalM[1])}, nil
	}
	if actionM != nil {
		inputM := actionInputRE.FindStringSubmatch(text)
		if inputM == nil {
			return step{}, fmt.Errorf("action %q has no Action Input", actionM[1])
		}
		return step{
			action:      strings.TrimSpace(actionM[1]),
			actionInput: strings.TrimSpace(inputM[1]),
		}, nil
	}
	return step{}, fmt.Errorf("response has neither an Action nor a Final Answer")
}
