package realtime

import (
	"log"
	"os"

	pubnub "github.com/pubnub/go/v7"
)

// OccupancyChannel carries one message type: {event_id, remaining_capacity}.
// The attendee browse page subscribes to it to grey out selling-out days.
const OccupancyChannel = "evofest-occupancy"

type OccupancyUpdate struct {
	EventID           string `json:"event_id"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

var pn *pubnub.PubNub

func Init() {
	pubKey := os.Getenv("PUBNUB_PUBLISH_KEY")
	subKey := os.Getenv("PUBNUB_SUBSCRIBE_KEY")
	if pubKey == "" || subKey == "" {
		log.Println("PubNub keys not set, occupancy updates disabled")
		return
	}

	cfg := pubnub.NewConfigWithUserId(pubnub.UserId("evofest-backend"))
	cfg.PublishKey = pubKey
	cfg.SubscribeKey = subKey
	cfg.SecretKey = os.Getenv("PUBNUB_SECRET_KEY")

	pn = pubnub.NewPubNub(cfg)
	log.Println("PubNub publisher initialized")
}

func PublishOccupancy(eventID string, remaining int) error {
	if pn == nil {
		return nil
	}
	_, _, err := pn.Publish().
		Channel(OccupancyChannel).
		Message(OccupancyUpdate{EventID: eventID, RemainingCapacity: remaining}).
		Execute()
	return err
}
