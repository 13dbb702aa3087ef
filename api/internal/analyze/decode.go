package analyze

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"calc-vision/api/internal/util"
)

// Форматы, которые модель принимает как есть; остальное перекодируем в PNG.
var passthroughFormats = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
}

// DecodeImage strips the data-URI header, base64-decodes the payload and
// checks that the bytes are a readable image.
func DecodeImage(dataURL string) (*Image, error) {
	declared, payload, err := util.SplitDataURL(dataURL)
	if err != nil {
		return nil, &DecodeError{Msg: "malformed data url", Err: err}
	}
	raw, err := util.DecodeBase64(payload)
	if err != nil {
		return nil, &DecodeError{Msg: "bad base64 payload", Err: err}
	}
	return NewImage(raw, declared)
}

// NewImage wraps raw image bytes. declared is the MIME the sender claimed;
// when empty it is sniffed from the bytes. Formats the model does not take
// natively (gif, bmp, tiff) are re-encoded to PNG.
func NewImage(raw []byte, declared string) (*Image, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Msg: "empty image"}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Msg: "cannot identify image file", Err: err}
	}

	declared = util.PickMIME("", declared, raw)

	if mime, ok := passthroughFormats[format]; ok {
		return &Image{Data: raw, MIME: mime, DeclaredMIME: declared, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Msg: "cannot read image data", Err: err}
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, &DecodeError{Msg: "png re-encode", Err: err}
	}
	return &Image{Data: out.Bytes(), MIME: "image/png", DeclaredMIME: declared, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
