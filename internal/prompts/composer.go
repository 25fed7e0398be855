package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shoply/support-bot/internal/styleguide"
)

// ComposedPrompt is the fixed message-template sequence for a session:
// an optional pre-rendered system slot, a history slot for turn replay, and
// an optional user template with a residual {{.Input}} placeholder.
// It is built once at session construction and never re-rendered.
type ComposedPrompt struct {
	Version        string
	System         string // fully rendered; empty when the version has no system half
	HasHistorySlot bool   // history is replayed between system and user slots
	UserTemplate   string // empty when the version has no user half
}

// RenderUser substitutes the per-turn input into the user slot. Rendering is
// stateless; the composed templates are not modified.
func (p *ComposedPrompt) RenderUser(input string) string {
	if p.UserTemplate == "" {
		return input
	}
	return Format(p.UserTemplate, map[string]string{"Input": input})
}

// Composer binds style guide values into catalog versions.
type Composer struct {
	guide   *styleguide.StyleGuide
	catalog *Catalog
}

// NewComposer creates a composer over an already-loaded style guide and catalog.
func NewComposer(guide *styleguide.StyleGuide, catalog *Catalog) *Composer {
	return &Composer{guide: guide, catalog: catalog}
}

// Compose resolves a catalog version and renders it into a ComposedPrompt.
// Style-guide variables are substituted into the system template here, once;
// they stay fixed for the session's lifetime. The user template receives the
// serialized output-field schema and keeps {{.Input}} for per-turn rendering.
func (c *Composer) Compose(version string) (*ComposedPrompt, error) {
	name, v, err := c.catalog.Resolve(version)
	if err != nil {
		return nil, err
	}

	if v.System == "" && v.User == "" {
		return nil, &NoPromptContentError{Version: name}
	}

	composed := &ComposedPrompt{Version: name}

	if v.System != "" {
		composed.System = Format(v.System, c.styleVariables())
		composed.HasHistorySlot = true
	}

	if v.User != "" {
		composed.UserTemplate = Format(v.User, map[string]string{
			"FormatFields": serializeFields(c.guide.Format.Fields),
		})
	}

	return composed, nil
}

// styleVariables builds the substitution map from the style guide.
func (c *Composer) styleVariables() map[string]string {
	return map[string]string{
		"Brand":        c.guide.Brand,
		"Persona":      c.guide.Tone.Persona,
		"SentencesMax": fmt.Sprintf("%d", c.guide.Tone.SentencesMax),
		"Bullets":      fmt.Sprintf("%t", c.guide.Tone.Bullets),
		"Avoid":        c.guide.AvoidList(),
		"MustInclude":  c.guide.MustIncludeList(),
		"Fallback":     c.guide.Fallback.NoData,
	}
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. Placeholders without a matching key are left intact.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// serializeFields renders the declared output fields as indented JSON for
// injection into the user template. Map keys marshal in sorted order, so the
// output is deterministic.
func serializeFields(fields map[string]string) string {
	if len(fields) == 0 {
		return "{}"
	}
	data, err := json.MarshalIndent(fields, "", "    ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
