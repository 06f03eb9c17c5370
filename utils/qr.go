package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPrefix is the fixed first segment of every guest QR payload. The check-in
// client scans the code and splits on ":" to recover the guest id, so the
// format is part of the external contract and must not change.
const QRPrefix = "EVOFEST"

func BuildQRPayload(guestID, email string) string {
	return fmt.Sprintf("%s:%s:%s", QRPrefix, guestID, email)
}

// ParseQRPayload extracts the guest id and email from a scanned payload.
// Emails may themselves contain ":" in theory, so only the first two
// separators are structural.
func ParseQRPayload(payload string) (guestID, email string, err error) {
	parts := strings.SplitN(payload, ":", 3)
	if len(parts) != 3 || parts[0] != QRPrefix {
		return "", "", fmt.Errorf("invalid QR payload format")
	}
	if parts[1] == "" {
		return "", "", fmt.Errorf("invalid QR payload: empty guest id")
	}
	return parts[1], parts[2], nil
}

// GenerateQRImage renders the payload as a 256x256 PNG and returns it as a
// data URL suitable for <img src> on the attendee's ticket.
func GenerateQRImage(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
