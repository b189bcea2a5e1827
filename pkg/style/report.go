package style

import (
	"fmt"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/installer"
	"github.com/bmad-code/agent-teams/pkg/manifest"
)

// BannerLines is the text inside the welcome banner.
var BannerLines = []string{
	"BMad Method — 12-Agent AI Development Team",
	"Claude Code Extension",
}

const nextStepsTemplate = `[title]Next steps:[/title]
  1. [command]cd {{dir}}[/command]
  2. [command]export CLAUDE_CODE_EXPERIMENTAL_AGENT_TEAMS=1[/command]
  3. [command]claude[/command]
  4. [command]/bmad-init[/command]`

// RenderBanner returns the boxed welcome banner.
func RenderBanner() string {
	return BannerStyle.Render(strings.Join(BannerLines, "\n"))
}

// RenderOutcomes returns one line per planned entry.
func RenderOutcomes(result *installer.Result) string {
	var b strings.Builder
	for _, o := range result.Outcomes {
		action := string(o.Decision.Action)
		badge := ActionBadge(action, result.DryRun)
		if o.Err != nil && o.Decision.Action.Mutates() {
			badge = ActionStyle("reject").Sprint(fmt.Sprintf("%-*s", badgeWidth, "failed"))
		}
		fmt.Fprintf(&b, "  %s %s\n", badge, o.Decision.Entry.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderErrors returns one "✗ <destination>: <cause>" line per error.
func RenderErrors(result *installer.Result) string {
	lines := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		lines = append(lines, fmt.Sprintf("%s %s: %s", ErrorIndicator(), e.Entry.Destination, errors.Cause(e.Err)))
	}
	return strings.Join(lines, "\n")
}

// RenderSummary returns the count line.
func RenderSummary(result *installer.Result) string {
	counts := fmt.Sprintf("%d created, %d overwritten, %d unchanged, %s, %s",
		result.Created, result.Overwritten, result.Skipped,
		plural(len(result.Conflicts), "conflict"), plural(len(result.Errors), "error"))
	if result.DryRun {
		counts = fmt.Sprintf("%d to create, %d to overwrite, %d unchanged, %s",
			result.Created, result.Overwritten, result.Skipped,
			plural(len(result.Conflicts), "conflict"))
		return TitleStyle.Render("Dry run, nothing was written:") + " " + counts
	}
	return TitleStyle.Render("Summary:") + " " + counts
}

// RenderStatus returns the closing line of an install.
func RenderStatus(result *installer.Result) string {
	switch {
	case !result.OK():
		return ErrorStyle.Render(fmt.Sprintf("Installation failed with %s", plural(len(result.Errors), "error")))
	case result.DryRun:
		return SuccessStyle.Render("Dry run complete.")
	default:
		return SuccessStyle.Render("✅ Installation complete!")
	}
}

// RenderNextSteps returns the getting-started instructions for dir. The
// path is shell quoted so the cd line can be pasted as is.
func RenderNextSteps(dir string) string {
	return RenderTemplate(nextStepsTemplate, map[string]string{"dir": shellescape.Quote(dir)})
}

// RenderAgents lists the agent roster.
func RenderAgents(agents []manifest.Agent) string {
	if len(agents) == 0 {
		return MutedStyle.Render("No agents found")
	}

	width := 0
	for _, a := range agents {
		if len(a.Name) > width {
			width = len(a.Name)
		}
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Agents (%d)", len(agents))))
	for _, a := range agents {
		line := fmt.Sprintf("\n  %s %s", AgentStyle.Render(fmt.Sprintf("%-*s", width, a.Name)), RoleStyle.Render(a.Role))
		if a.Description != "" {
			line += MutedStyle.Render(" - " + a.Description)
		}
		b.WriteString(line)
	}
	return b.String()
}

// RenderManifest lists every destination the install writes.
func RenderManifest(entries []manifest.Entry) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Files (%d)", len(entries))))
	for _, e := range entries {
		depth := strings.Count(e.Destination, "/")
		fmt.Fprintf(&b, "\n  %s%s", strings.Repeat("  ", depth), PathStyle.Render(e.String()))
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
