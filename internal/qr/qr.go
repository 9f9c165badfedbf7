package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const size = 300

// PNG рендерит код retiro в PNG для вложений.
func PNG(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, size)
}

// DataURL возвращает data:image/png;base64 для <img> в письмах.
func DataURL(code string) (string, error) {
	png, err := PNG(code)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
