package models

import (
	"time"
)

// Role values stored on User.Role
const (
	RoleAttendee  = "ATTENDEE"
	RoleOrganizer = "ORGANIZER"
	RoleStaff     = "STAFF"
	RoleAdmin     = "ADMIN"
)

// Payment status values
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

type User struct {
	UserID      string    `gorm:"primaryKey;size:100" json:"user_id"`
	Username    string    `gorm:"uniqueIndex;size:50" json:"username"`
	Name        string    `gorm:"size:100" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:100" json:"email"`
	Password    string    `gorm:"size:255" json:"-"`
	Role        string    `gorm:"size:20;default:ATTENDEE" json:"role"` // ATTENDEE, ORGANIZER, STAFF, ADMIN
	Gender      string    `gorm:"size:20" json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Events   []Event   `gorm:"foreignKey:OrganizerID" json:"events,omitempty"`
	Payments []Payment `gorm:"foreignKey:AttendeeID" json:"payments,omitempty"`
	Bookings []Booking `gorm:"foreignKey:AttendeeID" json:"bookings,omitempty"`
}

type Event struct {
	EventID     string    `gorm:"primaryKey;size:100" json:"event_id"`
	Title       string    `gorm:"size:150" json:"title"`
	OrganizerID string    `gorm:"size:100;index" json:"organizer_id"`
	Category    string    `gorm:"size:50" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Venue       string    `gorm:"size:255" json:"venue"`
	Capacity    uint      `json:"capacity"`
	Thumbnail   string    `gorm:"size:255" json:"thumbnail"`
	MediaURLs   string    `gorm:"type:text" json:"media_urls"` // comma separated
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Organizer User            `gorm:"foreignKey:OrganizerID" json:"organizer"`
	Schedules []EventSchedule `gorm:"foreignKey:EventID" json:"schedules,omitempty"`
	CheckIns  []CheckIn       `gorm:"foreignKey:EventID" json:"check_ins,omitempty"`
}

type EventSchedule struct {
	ScheduleID string    `gorm:"primaryKey;size:100" json:"schedule_id"`
	EventID    string    `gorm:"size:100;index" json:"event_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `gorm:"size:10" json:"start_time"` // HH:MM
	EndTime    string    `gorm:"size:10" json:"end_time"`
	Capacity   uint      `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Event             Event                  `gorm:"foreignKey:EventID" json:"event"`
	TicketTypeEntries []DailyTicketTypeEntry `gorm:"foreignKey:ScheduleID" json:"ticket_type_entries,omitempty"`
}

type DailyTicketTypeEntry struct {
	EntryID    string    `gorm:"primaryKey;size:100" json:"entry_id"`
	ScheduleID string    `gorm:"size:100;uniqueIndex:idx_schedule_type" json:"schedule_id"`
	Type       string    `gorm:"size:50;uniqueIndex:idx_schedule_type" json:"type"` // GENERAL, VIP, CHILD, ...
	Price      float64   `gorm:"type:decimal(10,2)" json:"price"`
	Quantity   uint      `json:"quantity"`
	Sold       uint      `gorm:"default:0" json:"sold"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Schedule EventSchedule `gorm:"foreignKey:ScheduleID" json:"schedule"`
	Bookings []Booking     `gorm:"foreignKey:TicketTypeEntryID" json:"bookings,omitempty"`
}

type Payment struct {
	PaymentID     string    `gorm:"primaryKey;size:100" json:"payment_id"`
	AttendeeID    string    `gorm:"size:100;index" json:"attendee_id"`
	Amount        float64   `gorm:"type:decimal(10,2)" json:"amount"`
	Status        string    `gorm:"size:20;default:PENDING" json:"status"` // PENDING, COMPLETED, FAILED
	TransactionID string    `gorm:"uniqueIndex;size:100" json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Attendee User      `gorm:"foreignKey:AttendeeID" json:"attendee"`
	Bookings []Booking `gorm:"foreignKey:PaymentID" json:"bookings,omitempty"`
}

type Booking struct {
	BookingID         string    `gorm:"primaryKey;size:100" json:"booking_id"`
	PaymentID         string    `gorm:"size:100;uniqueIndex:idx_payment_entry" json:"payment_id"`
	TicketTypeEntryID string    `gorm:"size:100;uniqueIndex:idx_payment_entry" json:"ticket_type_entry_id"`
	AttendeeID        string    `gorm:"size:100;index" json:"attendee_id"`
	Quantity          uint      `json:"quantity"`
	UnitPrice         float64   `gorm:"type:decimal(10,2)" json:"unit_price"`
	Subtotal          float64   `gorm:"type:decimal(10,2)" json:"subtotal"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	Payment         Payment              `gorm:"foreignKey:PaymentID" json:"payment"`
	TicketTypeEntry DailyTicketTypeEntry `gorm:"foreignKey:TicketTypeEntryID" json:"ticket_type_entry"`
	Attendee        User                 `gorm:"foreignKey:AttendeeID" json:"attendee"`
	Guests          []Guest              `gorm:"foreignKey:BookingID" json:"guests,omitempty"`
}

type Guest struct {
	GuestID   string    `gorm:"primaryKey;size:100" json:"guest_id"`
	BookingID string    `gorm:"size:100;index" json:"booking_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Age       uint      `json:"age"`
	Gender    string    `gorm:"size:20" json:"gender"`
	QRPayload string    `gorm:"size:255" json:"qr_payload"`
	QRImage   string    `gorm:"type:mediumtext" json:"qr_image"` // data URL, filled after fulfillment
	Emailed   bool      `gorm:"default:false" json:"emailed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking"`
}

type CheckIn struct {
	CheckInID   string    `gorm:"primaryKey;size:100" json:"check_in_id"`
	GuestID     string    `gorm:"uniqueIndex;size:100" json:"guest_id"`
	EventID     string    `gorm:"size:100;index" json:"event_id"`
	CheckedInAt time.Time `json:"checked_in_at"`

	// Relationships
	Guest Guest `gorm:"foreignKey:GuestID" json:"guest"`
	Event Event `gorm:"foreignKey:EventID" json:"event"`
}
