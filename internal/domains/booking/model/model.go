package model

import (
	"farmstay/shared/constant"
	"farmstay/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldFarmhouseID     = "farmhouse_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldGuests          = "guests"
	FieldTotalAmount     = "total_amount"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"

	// joined from farmhouses
	FieldOwnerID = "owner_id"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Statuses in lifecycle order, used for per-status reporting.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// SortableFields may be passed as sort_by on booking listings.
var SortableFields = []string{FieldCheckIn, FieldCheckOut, FieldTotalAmount, FieldStatus, constant.FieldCreatedAt}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// Completed and cancelled bookings are final.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

type Booking struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	FarmhouseID     string    `db:"farmhouse_id"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Guests          int       `db:"guests"`
	TotalAmount     float64   `db:"total_amount"`
	Status          string    `db:"status"`
	SpecialRequests *string   `db:"special_requests"`
	FarmhouseName   string    `column:"name"      db:"farmhouse_name" table:"farmhouses"`
	OwnerID         string    `db:"owner_id"      table:"farmhouses"`
	GuestName       string    `column:"full_name" db:"guest_name"     table:"users"`
	GuestEmail      string    `column:"email"     db:"guest_email"    table:"users"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN farmhouses ON farmhouses.id = bookings.farmhouse_id JOIN users ON users.id = bookings.user_id"
}
