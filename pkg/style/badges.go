package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// ActionVerbs gives the past and future tense label for each install action.
var ActionVerbs = map[string]struct {
	Past   string
	Future string
}{
	"create":    {Past: "created", Future: "would create"},
	"overwrite": {Past: "overwritten", Future: "would overwrite"},
	"skip":      {Past: "unchanged", Future: "unchanged"},
	"conflict":  {Past: "conflict", Future: "conflict"},
	"reject":    {Past: "rejected", Future: "rejected"},
}

// badgeWidth fits the longest verb.
const badgeWidth = 15

// ActionStyle returns the pterm style for an install action.
func ActionStyle(action string) *pterm.Style {
	switch action {
	case "create":
		return pterm.NewStyle(pterm.FgGreen)
	case "overwrite":
		return pterm.NewStyle(pterm.FgYellow)
	case "conflict":
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case "reject":
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// ActionBadge renders the fixed-width label for action. dryRun selects the
// future tense.
func ActionBadge(action string, dryRun bool) string {
	verb, ok := ActionVerbs[action]
	label := action
	if ok {
		label = verb.Past
		if dryRun {
			label = verb.Future
		}
	}
	return ActionStyle(action).Sprint(fmt.Sprintf("%-*s", badgeWidth, label))
}
