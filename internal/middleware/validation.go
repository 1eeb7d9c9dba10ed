package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxReasonLen = 1000 // creator_blocks.reason / video_blocks.reason
)

// ErrorResponse returns the standard API error envelope.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ValidateID parses a positive integer id from its string form.
func ValidateID(raw, field string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "'" + field + "' is required."
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "'" + field + "' must be a positive integer."
	}
	return id, ""
}

// ValidateReason trims, length-caps and HTML-escapes a block reason before
// it is stored.
func ValidateReason(raw string) (string, string) {
	reason := strings.TrimSpace(raw)
	if reason == "" {
		return "", "Reason is required and cannot be empty."
	}
	if len(reason) > MaxReasonLen {
		return "", "Reason too long."
	}
	return html.EscapeString(reason), ""
}

// DecodeStrictJSON decodes a request body into dst, rejecting unknown
// fields so bodies stay restricted to their allow-list. An empty body is
// accepted and leaves dst zero-valued.
func DecodeStrictJSON(c fiber.Ctx, dst any) string {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return "Invalid request body."
	}
	// Trailing garbage after the JSON value is also a malformed body.
	if dec.More() {
		return "Invalid request body."
	}
	return ""
}

// QueryInt parses an optional integer query parameter, returning fallback
// when absent and ok=false when malformed.
func QueryInt(c fiber.Ctx, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// QueryBool parses an optional 0/1 query parameter into *bool.
func QueryBool(c fiber.Ctx, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	switch raw {
	case "0", "false":
		v := false
		return &v, true
	case "1", "true":
		v := true
		return &v, true
	default:
		return nil, false
	}
}
