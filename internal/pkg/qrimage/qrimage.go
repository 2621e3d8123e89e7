// Package qrimage renders scan URLs as QR code images.
package qrimage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skip2/go-qrcode"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Renderer struct {
	baseURL string
	size    int
}

func NewRenderer(baseURL string, size int) *Renderer {
	return &Renderer{
		baseURL: strings.TrimRight(baseURL, "/"),
		size:    size,
	}
}

// ScanURL is the URL encoded in the QR code of a scan token.
func (r *Renderer) ScanURL(token string) string {
	return r.baseURL + "/" + token
}

func (r *Renderer) PNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(r.ScanURL(token), qrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

// WriteFile renders the token into dir as "<lab>_<seat>.png" and returns the path.
func (r *Renderer) WriteFile(dir, labName, seatNumber, token string) (string, error) {
	png, err := r.PNG(token)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	path := filepath.Join(dir, FileName(labName, seatNumber))
	if err = os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile -> %w", err)
	}

	return path, nil
}

func FileName(labName, seatNumber string) string {
	name := unsafeFileChars.ReplaceAllString(labName+"_"+seatNumber, "-")
	return strings.Trim(name, "-") + ".png"
}
