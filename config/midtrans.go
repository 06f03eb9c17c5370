package config

import (
	"log"
	"os"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var SnapClient snap.Client

func InitMidtrans() {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		log.Println("MIDTRANS_SERVER_KEY not set, checkout will fail until configured")
	}

	env := midtrans.Sandbox
	if Getenv("MIDTRANS_ENV", "sandbox") == "production" {
		env = midtrans.Production
	}

	SnapClient.New(serverKey, env)
	log.Println("Midtrans snap client initialized")
}

// MidtransServerKey is needed outside the snap client for notification
// signature verification.
func MidtransServerKey() string {
	return os.Getenv("MIDTRANS_SERVER_KEY")
}
