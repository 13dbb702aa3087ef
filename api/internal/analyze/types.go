package analyze

import (
	"strings"

	"calc-vision/api/internal/llm"
)

// Category is what the classifier thinks the image shows.
type Category int

const (
	CategoryMath Category = iota
	CategoryConcept
)

func (c Category) String() string {
	switch c {
	case CategoryMath:
		return "math"
	case CategoryConcept:
		return "concept"
	default:
		return "unknown"
	}
}

// Request is the inbound payload of one analysis.
type Request struct {
	Image     string             `json:"image"`
	Variables map[string]float64 `json:"dict_of_vars"`
}

// Record is one extracted answer. Result is a string or a json.Number,
// whatever the model produced; consumers must handle both.
type Record struct {
	Expr   string `json:"expr"`
	Result any    `json:"result"`
	Assign bool   `json:"assign"`
}

// Image is a decoded, readable picture ready to be sent to the model.
// MIME describes Data as sent; DeclaredMIME is what the sender claimed
// (data-URI header, or sniffed bytes when there was none).
type Image struct {
	Data         []byte
	MIME         string
	DeclaredMIME string
	Format       string
	Width        int
	Height       int
}

// DeclaredMismatch reports whether the claimed type disagrees with the decoded format.
func (img *Image) DeclaredMismatch() bool {
	declared := strings.ToLower(strings.TrimSpace(img.DeclaredMIME))
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	return declared != "image/"+img.Format
}

func (img *Image) Blob() llm.Blob {
	return llm.Blob{MIMEType: img.MIME, Data: img.Data}
}
