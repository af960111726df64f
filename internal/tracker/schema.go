package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// replySchema describes a phx_reply payload.
const replySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status", "response"],
  "properties": {
    "status": {"type": "string", "enum": ["ok", "error"]},
    "response": {"type": "object"}
  }
}`

// createResponseSchema describes the response of create_instance.
const createResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "password"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "password": {"type": "string", "minLength": 1}
  }
}`

var (
	replyValidator  = jsonschema.MustCompileString("reply.schema.json", replySchema)
	createValidator = jsonschema.MustCompileString("create.schema.json", createResponseSchema)
)

// validate checks raw JSON against s.
func validate(s *jsonschema.Schema, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
