package filecheck

// Package filecheck validates candidate uploads before any network call.
// The filename extension and the client-declared Content-Type are both
// attacker-controlled, so acceptance is decided by magic-byte detection over
// the file content; the extension check only catches accidental mismatches
// cheaply before a round trip is spent.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen bounds how many leading bytes are inspected for magic-byte detection.
const sniffLen = 4096

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"mp4":  {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"video/mp4":  {},
}

// Extension returns the lowercase text after the final "." in filename, or
// the empty string if there is none.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// DetectMIME returns the MIME type derived from the file's byte signature.
// At most the first 4096 bytes are inspected. Unrecognized or empty content
// yields a generic type rather than an error; callers treat anything outside
// the allow-list as a rejection.
func DetectMIME(data []byte) string {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return mimetype.Detect(data).String()
}

// CheckUpload runs the allow-list policy over a candidate file and returns
// the sniffed MIME type on acceptance. The returned error is written in
// user-facing terms and, for content mismatches, names the detected real type
// so the user understands why their file was refused.
func CheckUpload(filename string, data []byte) (string, error) {
	ext := Extension(filename)
	if _, ok := allowedExtensions[ext]; !ok {
		return "", errors.New("Invalid file type. Allowed: .png, .jpg/.jpeg, .mp4")
	}

	mime := DetectMIME(data)
	if _, ok := allowedMIMETypes[mime]; !ok {
		return mime, fmt.Errorf(
			"Invalid file format detected: %s. Please upload a true PNG, JPG, or MP4 file (not PDF, slideshow, or WebP). Tip: if your file came from Canva or Google, re-export it as PNG or JPG.",
			mime,
		)
	}
	return mime, nil
}
