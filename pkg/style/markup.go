package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser handles parsing and rendering of markup tags such as
// [success]done[/success].
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, style := range map[string]lipgloss.Style{
		"title":   TitleStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"info":    InfoStyle,
		"command": CommandStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"agent":   AgentStyle,
		"role":    RoleStyle,
		"bold":    lipgloss.NewStyle().Bold(true),
	} {
		p.AddStyle(tag, style)
	}
	return p
}

// Render processes markup text and returns styled output. Unknown tags are
// left as they are.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		oldResult := result
		for tag, pattern := range p.patterns {
			style := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				return style.Render(submatch[1])
			})
		}
		if result == oldResult {
			return result
		}
	}
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// RenderTemplate renders markup, then substitutes {{key}} placeholders.
// Values are inserted verbatim, so markup-like text in them stays literal.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := p.Render(template)
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
