package dto

import (
	"errors"
	"farmstay/internal/domains/bookingrequest/model"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gModel "farmstay/shared/model"
	"farmstay/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var errCheckOutOrder = errors.New("check_out must be after check_in")

type CreateRequest struct {
	Name        string  `json:"name"                   validate:"required,min=2,max=100"`
	Phone       string  `json:"phone"                  validate:"required,min=6,max=20"`
	Email       string  `json:"email"                  validate:"required,email"`
	FarmhouseID *string `json:"farmhouse_id,omitempty" validate:"omitempty,uuid"`
	CheckIn     string  `json:"check_in"               validate:"required,dateonly"`
	CheckOut    string  `json:"check_out"              validate:"required,dateonly"`
	Guests      int     `json:"guests"                 validate:"required,min=1,max=100"`
	Message     *string `json:"message,omitempty"      validate:"omitempty,max=2000"`
}

// Dates parses check_in and check_out and checks their order.
func (c *CreateRequest) Dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = shared.ParseDate(c.CheckIn); err != nil {
		return checkIn, checkOut, fmt.Errorf("check_in: %w", err)
	}

	if checkOut, err = shared.ParseDate(c.CheckOut); err != nil {
		return checkIn, checkOut, fmt.Errorf("check_out: %w", err)
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, errCheckOutOrder
	}

	return checkIn, checkOut, nil
}

func (c *CreateRequest) ToModel(checkIn, checkOut time.Time, actor string) model.BookingRequest {
	return model.BookingRequest{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		FarmhouseID: c.FarmhouseID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      c.Guests,
		Message:     c.Message,
		Status:      model.StatusNew,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=new contacted converted closed"`
}

type BookingRequestResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	FarmhouseID   *string `json:"farmhouse_id,omitempty"`
	FarmhouseName *string `json:"farmhouse_name,omitempty"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Guests        int     `json:"guests"`
	Message       *string `json:"message,omitempty"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *BookingRequestResponse) FromModel(req model.BookingRequest) {
	r.ID = req.ID
	r.Name = req.Name
	r.Phone = req.Phone
	r.Email = req.Email
	r.FarmhouseID = req.FarmhouseID
	r.FarmhouseName = req.FarmhouseName
	r.CheckIn = req.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = req.CheckOut.Format(constant.DateOnlyFormat)
	r.Guests = req.Guests
	r.Message = req.Message
	r.Status = req.Status
	r.Metadata.FromModel(req.Metadata)
}

type GetBookingRequestsResponse struct {
	BookingRequests []BookingRequestResponse `json:"booking_requests"`
	TotalPage       int                      `json:"total_page"`
	TotalData       int                      `json:"total_data"`
}

func (r *GetBookingRequestsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.BookingRequests = make([]BookingRequestResponse, len(models))
	for i, mod := range models {
		r.BookingRequests[i].FromModel(mod)
	}
}

// Event is the payload of booking_request.created.
type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	FarmhouseID *string `json:"farmhouse_id,omitempty"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Guests      int     `json:"guests"`
}

func NewEvent(req model.BookingRequest) Event {
	return Event{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		FarmhouseID: req.FarmhouseID,
		CheckIn:     req.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:    req.CheckOut.Format(constant.DateOnlyFormat),
		Guests:      req.Guests,
	}
}

// Filter builds the admin listing filter. search matches name, email or phone.
func Filter(status, search string) gDto.FilterGroup {
	filter := gDto.NewFilterGroup()

	filter.AddIf(status, gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if search != "" {
		filter.Add(gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_phone", Field: model.FieldPhone, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	return filter
}

// OpenFilter matches requests nobody has converted or closed yet.
func OpenFilter() gDto.FilterGroup {
	return gDto.NewFilterGroup(gDto.Filter{Field: model.FieldStatus, Value: model.OpenStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName})
}
