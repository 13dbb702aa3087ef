package util

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var ErrNoDataURLComma = errors.New("data url has no comma separator")

// SniffMimeHTTP определяет MIME по сигнатуре байтов.
func SniffMimeHTTP(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	if len(b) > 0 {
		return http.DetectContentType(b)
	}
	return "application/octet-stream"
}

// SplitDataURL режет data:<mime>;base64,<payload> по первой запятой.
// Возвращает MIME из префикса (может быть пустым) и payload.
func SplitDataURL(s string) (mime, payload string, err error) {
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return "", "", ErrNoDataURLComma
	}
	meta := strings.TrimPrefix(s[:idx], "data:") // "<mime>;base64"
	if semi := strings.IndexByte(meta, ';'); semi >= 0 {
		mime = meta[:semi]
	} else {
		mime = meta
	}
	return strings.TrimSpace(mime), s[idx+1:], nil
}

// DecodeBase64 декодирует стандартную base64, затем URL-safe и RawStd.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, nil
	}
	if b3, err3 := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err3 == nil {
		return b3, nil
	}
	return nil, err
}

// PickMIME берём явный MIME, затем из data:URI, иначе детектим по байтам.
func PickMIME(explicit, hint string, data []byte) string {
	if exp := strings.TrimSpace(explicit); exp != "" {
		return exp
	}
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	if len(data) > 0 {
		return SniffMimeHTTP(data)
	}
	return "image/jpeg"
}

func MakeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
