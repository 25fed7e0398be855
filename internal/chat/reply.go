// Package chat owns the conversation session: identity, append-only history,
// the composed prompt, and the model-calling contract.
package chat

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"

	"github.com/shoply/support-bot/internal/llm"
)

//go:embed structured_reply.schema.json
var structuredReplySchema string

// StructuredReply is the validated shape every model answer must fit.
// Bounds violations fail validation; values are never silently truncated.
type StructuredReply struct {
	Answer  string   `json:"answer" validate:"required,min=1,max=500"`
	Tone    string   `json:"tone" validate:"required,min=1,max=200"`
	Actions []string `json:"actions" validate:"max=3"`
}

var validate = validator.New()

// Validate checks the reply against its field bounds.
func (r *StructuredReply) Validate() error {
	return validate.Struct(r)
}

// Reply is the tagged result of a chat turn. Callers type-switch on the
// concrete type instead of branching on ad hoc shapes.
type Reply interface {
	// AnswerText returns the user-visible answer text.
	AnswerText() string
}

// PlainAnswer is an unstructured reply, produced by short-circuit paths that
// bypass the model (e.g. a bare order-status command).
type PlainAnswer struct {
	Text string
}

// AnswerText returns the plain text.
func (p PlainAnswer) AnswerText() string { return p.Text }

// StructuredAnswer wraps a schema-validated model reply.
type StructuredAnswer struct {
	Reply StructuredReply
}

// AnswerText returns the structured reply's answer field.
func (s StructuredAnswer) AnswerText() string { return s.Reply.Answer }

// ParseStructuredReply coerces raw model output into a StructuredReply.
// The raw JSON is checked against the embedded JSON Schema, decoded, and
// re-validated on the struct. Any failure surfaces as SchemaValidationError.
func ParseStructuredReply(raw string) (*StructuredReply, error) {
	cleaned := llm.CleanJSONBlock(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(structuredReplySchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, &SchemaValidationError{Message: "model output is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		return nil, &SchemaValidationError{Message: schemaIssues(result)}
	}

	var reply StructuredReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, &SchemaValidationError{Message: "failed to decode model output", Cause: err}
	}
	if reply.Actions == nil {
		reply.Actions = []string{}
	}

	if err := reply.Validate(); err != nil {
		return nil, &SchemaValidationError{Message: "model output violates reply bounds", Cause: err}
	}

	return &reply, nil
}

// ReplySchema declares the structured output constraint passed to the model.
func ReplySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"answer": {
				Type:        genai.TypeString,
				Description: "Краткий ответ на вопрос пользователя",
			},
			"tone": {
				Type:        genai.TypeString,
				Description: "Совпадает ли тон с голосом бренда (да/нет) + одна фраза почему",
			},
			"actions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Следующие шаги для клиента, не больше трёх",
			},
		},
		Required: []string{"answer", "tone", "actions"},
	}
}

func schemaIssues(result *gojsonschema.Result) string {
	msg := "model output failed schema validation:"
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msg += fmt.Sprintf(" %s: %s;", field, desc.Description())
	}
	return msg
}
