package generator

import (
	"encoding/json"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

type replyQuestion struct {
	Question   string `json:"question" jsonschema:"required,description=The question text"`
	Answer     string `json:"answer" jsonschema:"required,description=The answer (be concise)"`
	SearchTerm string `json:"searchTerm,omitempty" jsonschema:"description=Media search hint. Only for music film and picture questions"`
}

type reply struct {
	Questions []replyQuestion `json:"questions" jsonschema:"required,description=The generated questions in order"`
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
}

var (
	schemaOnce sync.Once
	schemaJSON string
)

// replySchemaJSON is the JSON Schema of the reply, embedded in every prompt.
func replySchemaJSON() string {
	schemaOnce.Do(func() {
		schema := reflector().Reflect(&reply{})
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			schemaJSON = `{"type":"object","required":["questions"]}`
			return
		}
		schemaJSON = string(data)
	})
	return schemaJSON
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	var v T
	schema := reflector().Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}
