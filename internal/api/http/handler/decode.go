package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/validation"
)

// requestInput holds the fields of a request body by name. JSON values keep
// their decoded type; form values are strings.
type requestInput map[string]any

// readInput decodes a JSON object, urlencoded or multipart form body. An
// empty body yields no fields.
func readInput(c *fiber.Ctx) (requestInput, error) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	in := requestInput{}

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			in[string(key)] = string(value)
		})
		return in, nil

	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, errMalformedBody
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				in[key] = values[0]
			}
		}
		return in, nil

	case len(bytes.TrimSpace(c.Body())) == 0:
		return in, nil
	}

	if err := json.Unmarshal(c.Body(), &in); err != nil || in == nil {
		return nil, errMalformedBody
	}
	return in, nil
}

// str returns the string value of key, or "" when it is absent or not a string.
func (in requestInput) str(key string) string {
	s, _ := in[key].(string)
	return s
}

// taskFields extracts title and completed. Values of the wrong type are
// recorded in DecodeErrors instead of failing the request.
func (in requestInput) taskFields() model.TaskFields {
	var fields model.TaskFields

	addError := func(field, rule string) {
		if fields.DecodeErrors == nil {
			fields.DecodeErrors = model.FieldErrors{}
		}
		fields.DecodeErrors.Add(field, validation.Message(field, rule, ""))
	}

	if v, ok := in["title"]; ok {
		switch title := v.(type) {
		case string:
			fields.Title = &title
		case nil:
			empty := ""
			fields.Title = &empty
		default:
			addError("title", "string")
		}
	}

	if v, ok := in["completed"]; ok {
		if completed, ok := parseBool(v); ok {
			fields.Completed = &completed
		} else {
			addError("completed", "boolean")
		}
	}

	return fields
}

// parseBool accepts true, false, 1, 0, "1" and "0".
func parseBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		switch b {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	case string:
		switch b {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	}
	return false, false
}
