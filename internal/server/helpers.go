package server

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
)

// parseStrictBody decodes the request body into dst, rejecting unknown fields
// and trailing garbage. Request contracts are exact: a body with fields the
// endpoint does not define is a validation error, not something to ignore.
func parseStrictBody(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return io.ErrUnexpectedEOF
	}
	return nil
}
