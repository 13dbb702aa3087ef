package analyze

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"calc-vision/api/internal/llm"
	"calc-vision/api/internal/util"
)

type stubReply struct {
	text string
	err  error
}

// stubEngine replays canned replies in order and records what it was sent.
type stubEngine struct {
	replies   []stubReply
	prompts   []string
	blobs     []llm.Blob
	deadlines []bool
}

func (s *stubEngine) Name() string     { return "stub" }
func (s *stubEngine) GetModel() string { return "stub-model" }

func (s *stubEngine) GenerateText(ctx context.Context, prompt string, img llm.Blob) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.blobs = append(s.blobs, img)
	_, hasDeadline := ctx.Deadline()
	s.deadlines = append(s.deadlines, hasDeadline)
	if len(s.replies) == 0 {
		return "", errors.New("stub: no reply configured")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.text, r.err
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		img.Set(x, 1, color.Black)
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	return util.MakeDataURL("image/png", pngBytes(t))
}
