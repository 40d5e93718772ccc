package model

import (
	"farmstay/shared/constant"
	"farmstay/shared/model"
	"time"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking_request"

	FieldID            = "id"
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldFarmhouseID   = "farmhouse_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldGuests        = "guests"
	FieldMessage       = "message"
	FieldStatus        = "status"
	FieldFarmhouseName = "farmhouse_name"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
	StatusClosed    = "closed"
)

// Open requests still need a reply from the team.
var OpenStatuses = []string{StatusNew, StatusContacted}

var SortableFields = []string{constant.FieldCreatedAt, FieldCheckIn, FieldStatus, FieldName}

type BookingRequest struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	Email         string    `db:"email"`
	FarmhouseID   *string   `db:"farmhouse_id"`
	FarmhouseName *string   `column:"name"        db:"farmhouse_name" table:"farmhouses"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	Guests        int       `db:"guests"`
	Message       *string   `db:"message"`
	Status        string    `db:"status"`
	model.Metadata
}

// GetJoinQuery keeps requests without a farmhouse in the result.
func (BookingRequest) GetJoinQuery() string {
	return "LEFT JOIN farmhouses ON farmhouses.id = booking_requests.farmhouse_id"
}
