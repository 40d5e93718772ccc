package dto

import (
	bookingModel "farmstay/internal/domains/booking/model"
	bookingDto "farmstay/internal/domains/booking/model/dto"
	farmhouseModel "farmstay/internal/domains/farmhouse/model"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"time"
)

// UpcomingLimit is how many check-ins the owner dashboard lists.
const UpcomingLimit = 5

// RevenueQuery sums through the generic Scalar helper, which appends FROM, joins and WHERE.
const RevenueQuery = "SELECT COALESCE(SUM(bookings.total_amount), 0)"

var revenueStatuses = []string{bookingModel.StatusConfirmed, bookingModel.StatusCompleted}

var upcomingStatuses = []string{bookingModel.StatusPending, bookingModel.StatusConfirmed}

type ListingStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type OwnerDashboardResponse struct {
	Farmhouses       ListingStats                 `json:"farmhouses"`
	Bookings         map[string]int               `json:"bookings"`
	Revenue          float64                      `json:"revenue"`
	UpcomingCheckIns []bookingDto.BookingResponse `json:"upcoming_check_ins"`
}

type AdminDashboardResponse struct {
	Users               map[string]int `json:"users"`
	Farmhouses          ListingStats   `json:"farmhouses"`
	Bookings            map[string]int `json:"bookings"`
	Revenue             float64        `json:"revenue"`
	OpenBookingRequests int            `json:"open_booking_requests"`
}

// UsersByRole lists every role, including the ones nobody holds yet.
func UsersByRole(counts map[string]int) map[string]int {
	res := map[string]int{constant.RoleVisitor: 0, constant.RoleOwner: 0, constant.RoleAdmin: 0}
	for role, total := range counts {
		res[role] = total
	}

	return res
}

// ListingFilter scopes farmhouses to an owner when ownerID is set.
func ListingFilter(ownerID string, activeOnly bool) gDto.FilterGroup {
	filter := gDto.NewFilterGroup()

	filter.AddIf(ownerID, gDto.Filter{Field: farmhouseModel.FieldOwnerID, Operator: gDto.FilterOperatorEq, Table: farmhouseModel.TableName})

	if activeOnly {
		filter.Add(gDto.Filter{Field: farmhouseModel.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: farmhouseModel.TableName})
	}

	return filter
}

// BookingFilter scopes bookings to the farmhouses of ownerID when set.
func BookingFilter(ownerID string) gDto.FilterGroup {
	return bookingDto.Filter(bookingDto.FilterQuery{OwnerID: ownerID})
}

// RevenueFilter keeps the bookings that count as earned.
func RevenueFilter(ownerID string) gDto.FilterGroup {
	filter := BookingFilter(ownerID)
	filter.Add(gDto.Filter{ArgName: "revenue_status", Field: bookingModel.FieldStatus, Value: revenueStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName})

	return filter
}

// UpcomingFilter keeps live bookings that check in on or after today.
func UpcomingFilter(ownerID string, today time.Time) gDto.FilterGroup {
	filter := BookingFilter(ownerID)
	filter.Add(
		gDto.Filter{ArgName: "upcoming_status", Field: bookingModel.FieldStatus, Value: upcomingStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		gDto.Filter{ArgName: "upcoming_from", Field: bookingModel.FieldCheckIn, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: bookingModel.TableName},
	)

	return filter
}

func UpcomingParams() gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   UpcomingLimit,
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldCheckIn,
		SortDir: gDto.SortDirAsc,
	}
}
