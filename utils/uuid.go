package utils

import (
	"fmt"

	"github.com/google/uuid"
)

func GeneratePrefixedUUID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}

func GenerateUserID() string {
	return GeneratePrefixedUUID("user")
}

func GenerateEventID() string {
	return GeneratePrefixedUUID("event")
}

func GenerateScheduleID() string {
	return GeneratePrefixedUUID("sched")
}

func GenerateTicketTypeEntryID() string {
	return GeneratePrefixedUUID("tte")
}

func GeneratePaymentID() string {
	return GeneratePrefixedUUID("pay")
}

func GenerateOrderID() string {
	return GeneratePrefixedUUID("order")
}

func GenerateBookingID() string {
	return GeneratePrefixedUUID("book")
}

func GenerateGuestID() string {
	return GeneratePrefixedUUID("guest")
}

func GenerateCheckInID() string {
	return GeneratePrefixedUUID("chk")
}
