package dto

import (
	"farmstay/internal/domains/booking/model"
	farmhouseModel "farmstay/internal/domains/farmhouse/model"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gModel "farmstay/shared/model"
	"farmstay/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FarmhouseID     string  `json:"farmhouse_id"               validate:"required,uuid"`
	CheckIn         string  `json:"check_in"                   validate:"required,dateonly"`
	CheckOut        string  `json:"check_out"                  validate:"required,dateonly"`
	Guests          int     `json:"guests"                     validate:"required,min=1"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

// Stay is a validated check-in/check-out pair.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (s Stay) Nights() int {
	return timezone.Nights(s.CheckIn, s.CheckOut)
}

// ParseStay reads both dates and checks their order.
func (c *CreateBookingRequest) ParseStay() (Stay, error) {
	checkIn, err := shared.ParseDate(c.CheckIn)
	if err != nil {
		return Stay{}, err
	}

	checkOut, err := shared.ParseDate(c.CheckOut)
	if err != nil {
		return Stay{}, err
	}

	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func (c *CreateBookingRequest) ToModel(userID string, stay Stay, pricePerNight float64) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		FarmhouseID:     c.FarmhouseID,
		CheckIn:         stay.CheckIn,
		CheckOut:        stay.CheckOut,
		Guests:          c.Guests,
		TotalAmount:     float64(stay.Nights()) * pricePerNight,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata:        gModel.NewMetadata(userID, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	GuestName       string  `json:"guest_name,omitempty"`
	GuestEmail      string  `json:"guest_email,omitempty"`
	FarmhouseID     string  `json:"farmhouse_id"`
	FarmhouseName   string  `json:"farmhouse_name,omitempty"`
	OwnerID         string  `json:"owner_id,omitempty"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Nights          int     `json:"nights"`
	Guests          int     `json:"guests"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.UserID = booking.UserID
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.FarmhouseID = booking.FarmhouseID
	r.FarmhouseName = booking.FarmhouseName
	r.OwnerID = booking.OwnerID
	r.CheckIn = booking.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = booking.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = timezone.Nights(booking.CheckIn, booking.CheckOut)
	r.Guests = booking.Guests
	r.TotalAmount = booking.TotalAmount
	r.Status = booking.Status
	r.SpecialRequests = booking.SpecialRequests
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Event is the payload of booking domain events.
type Event struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	FarmhouseID    string  `json:"farmhouse_id"`
	OwnerID        string  `json:"owner_id,omitempty"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	TotalAmount    float64 `json:"total_amount"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status,omitempty"`
}

func NewEvent(booking model.Booking, previousStatus string) Event {
	return Event{
		ID:             booking.ID,
		UserID:         booking.UserID,
		FarmhouseID:    booking.FarmhouseID,
		OwnerID:        booking.OwnerID,
		CheckIn:        booking.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:       booking.CheckOut.Format(constant.DateOnlyFormat),
		TotalAmount:    booking.TotalAmount,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
	}
}

// FilterQuery holds the listing filters as they arrive on the query string.
type FilterQuery struct {
	Status      string
	FarmhouseID string
	UserID      string
	OwnerID     string
	From        string
	To          string
}

// Filter narrows a listing. From and To keep bookings whose stay overlaps the window.
func Filter(query FilterQuery) gDto.FilterGroup {
	filter := gDto.NewFilterGroup()

	filter.AddIf(query.Status, gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.AddIf(query.FarmhouseID, gDto.Filter{Field: model.FieldFarmhouseID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.AddIf(query.UserID, gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.AddIf(query.OwnerID, gDto.Filter{Field: model.FieldOwnerID, Operator: gDto.FilterOperatorEq, Table: farmhouseModel.TableName})

	if from, err := shared.ParseDate(query.From); err == nil {
		filter.Add(gDto.Filter{ArgName: "window_from", Field: model.FieldCheckOut, Value: from, Operator: gDto.FilterOperatorGreater, Table: model.TableName})
	}

	if to, err := shared.ParseDate(query.To); err == nil {
		filter.Add(gDto.Filter{ArgName: "window_to", Field: model.FieldCheckIn, Value: to, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	return filter
}

// OverlapFilter matches live bookings on the farmhouse that share at least one night with stay.
func OverlapFilter(farmhouseID string, stay Stay) gDto.FilterGroup {
	return gDto.NewFilterGroup(
		gDto.Filter{Field: model.FieldFarmhouseID, Value: farmhouseID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		gDto.Filter{ArgName: "stay_check_out", Field: model.FieldCheckIn, Value: stay.CheckOut, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "stay_check_in", Field: model.FieldCheckOut, Value: stay.CheckIn, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)
}

type ExportResponse struct {
	FileName string
	Data     []byte
}
