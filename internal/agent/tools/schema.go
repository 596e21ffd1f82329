package tools

// JSON-schema helpers for tool input declarations.

// ObjectSchema builds an object schema from property definitions.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty describes a string parameter.
func StringProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

// StringEnumProperty describes a string parameter restricted to values.
func StringEnumProperty(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

// NumberProperty describes a numeric parameter.
func NumberProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

// IntegerProperty describes an integer parameter.
func IntegerProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

// BooleanProperty describes a boolean parameter.
func BooleanProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}
