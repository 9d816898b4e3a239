package services

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length in pixels of an encoded ticket code
const DefaultQRSize = 150

// QREncoder renders ticket ids as QR codes. Output depends only on the payload.
type QREncoder struct {
	size     int
	recovery qrcode.RecoveryLevel
}

// NewQREncoder creates an encoder producing size×size PNG images
func NewQREncoder(size int) *QREncoder {
	if size <= 0 {
		size = DefaultQRSize
	}
	return &QREncoder{size: size, recovery: qrcode.Medium}
}

// Encode returns the code as PNG bytes
func (e *QREncoder) Encode(payload string) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("encode qr code: empty payload")
	}

	png, err := qrcode.Encode(payload, e.recovery, e.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// Terminal returns the code drawn with half-block characters
func (e *QREncoder) Terminal(payload string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		return "", fmt.Errorf("encode qr code: empty payload")
	}

	code, err := qrcode.New(payload, e.recovery)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return code.ToSmallString(false), nil
}

// Size returns the PNG edge length in pixels
func (e *QREncoder) Size() int {
	return e.size
}
