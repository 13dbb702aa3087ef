package analyze

import (
	"strings"
	"unicode/utf8"
)

const (
	ImagePrefix = "data:image/"
	// MaxImageLen caps the encoded image string, in characters.
	MaxImageLen = 7 * 1024 * 1024
)

// Validate checks the data-URI shape and size. A nil variable map becomes empty.
func Validate(req *Request) error {
	if !strings.HasPrefix(req.Image, ImagePrefix) {
		return &ValidationError{Field: "image", Msg: "Invalid image format"}
	}
	if len(req.Image) > MaxImageLen && utf8.RuneCountInString(req.Image) > MaxImageLen {
		return &ValidationError{Field: "image", Msg: "Image too large"}
	}
	if req.Variables == nil {
		req.Variables = map[string]float64{}
	}
	return nil
}
