// Package styleguide loads and validates the brand voice ruleset that
// constrains every generated reply.
package styleguide

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tone describes the voice constraints for generated text.
type Tone struct {
	Persona      string   `yaml:"persona" validate:"required"`
	SentencesMax int      `yaml:"sentences_max" validate:"required,gt=0"`
	Bullets      bool     `yaml:"bullets"`
	Avoid        []string `yaml:"avoid"`
	MustInclude  []string `yaml:"must_include"`
}

// Fallback holds canned replies for situations the model cannot answer.
type Fallback struct {
	NoData string `yaml:"no_data" validate:"required"`
}

// Format declares the output fields the model is asked to produce.
type Format struct {
	Fields map[string]string `yaml:"fields"`
}

// StyleGuide is the brand voice ruleset. It is loaded once at startup and
// treated as immutable afterwards; components receive it by pointer instead
// of reading shared globals.
type StyleGuide struct {
	Brand    string   `yaml:"brand" validate:"required"`
	Tone     Tone     `yaml:"tone" validate:"required"`
	Fallback Fallback `yaml:"fallback" validate:"required"`
	Format   Format   `yaml:"format"`
}

var validate = validator.New()

// Load reads and validates a style guide from a YAML file.
func Load(path string) (*StyleGuide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read style guide %s", path), Cause: err}
	}
	return Parse(data)
}

// Parse decodes and validates a style guide from YAML bytes.
func Parse(data []byte) (*StyleGuide, error) {
	var sg StyleGuide
	if err := yaml.Unmarshal(data, &sg); err != nil {
		return nil, &LoadError{Message: "failed to parse style guide YAML", Cause: err}
	}

	if err := validate.Struct(&sg); err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("style guide failed validation: %v", err)}
	}

	return &sg, nil
}

// AvoidList returns the comma-joined avoid phrases for prompt substitution.
func (sg *StyleGuide) AvoidList() string {
	return strings.Join(sg.Tone.Avoid, ", ")
}

// MustIncludeList returns the comma-joined required phrases for prompt substitution.
func (sg *StyleGuide) MustIncludeList() string {
	return strings.Join(sg.Tone.MustInclude, ", ")
}
