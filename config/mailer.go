package config

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

var mailDialer *gomail.Dialer
var mailFrom string

func InitMailer() {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("SMTP_HOST not set, ticket emails will be skipped")
		return
	}

	port, err := strconv.Atoi(Getenv("SMTP_PORT", "587"))
	if err != nil {
		log.Fatal("Invalid SMTP_PORT:", err)
	}

	mailFrom = Getenv("SMTP_FROM", "tickets@evofest.com")
	mailDialer = gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	log.Println("Mailer initialized for", host)
}

// SendTicketEmail delivers one guest ticket with the QR image attached.
// qrDataURL is the data:image/png;base64 string stored on the guest row.
func SendTicketEmail(to, guestName, eventTitle, qrDataURL string) error {
	if mailDialer == nil {
		return fmt.Errorf("mailer not configured")
	}

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(qrDataURL, "data:image/png;base64,"))
	if err != nil {
		return fmt.Errorf("decode qr image: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", mailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your EvoFest ticket for %s", eventTitle))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your ticket for <b>%s</b> is confirmed. Show the attached QR code at the entrance.</p>",
		guestName, eventTitle))
	m.Attach("ticket-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	return mailDialer.DialAndSend(m)
}
