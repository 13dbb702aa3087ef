package analyze

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects a malformed request before any work is done.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Kind() string  { return "ValidationError" }

// DecodeError means the image string could not be turned into a readable image.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Kind() string  { return "DecodeError" }

// KindOf names the error class for client-facing envelopes.
func KindOf(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	if err == nil {
		return ""
	}
	name := fmt.Sprintf("%T", err)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
