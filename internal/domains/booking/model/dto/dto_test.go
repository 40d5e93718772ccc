package dto_test

import (
	"farmstay/internal/domains/booking/model"
	"farmstay/internal/domains/booking/model/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: "2030-05-01", CheckOut: "2030-05-04", Guests: 4}

	stay, err := req.ParseStay()
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights())

	booking := req.ToModel("u-1", stay, 4500)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, 13500.0, booking.TotalAmount)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, "u-1", booking.CreatedBy)
}

func TestCreateBookingRequest_ParseStay(t *testing.T) {
	req := dto.CreateBookingRequest{CheckIn: "2030-13-01", CheckOut: "2030-05-04"}

	_, err := req.ParseStay()
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestFilter(t *testing.T) {
	filter := dto.Filter(dto.FilterQuery{
		Status:  model.StatusConfirmed,
		OwnerID: "o-1",
		From:    "2030-05-01",
		To:      "not-a-date",
	})
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.status = :status")
	assert.Contains(t, where, "farmhouses.owner_id = :owner_id")
	assert.Contains(t, where, "bookings.check_out > :window_from")
	assert.NotContains(t, where, "window_to")
	assert.Equal(t, "o-1", args["owner_id"])
}

func TestOverlapFilter(t *testing.T) {
	stay, err := (&dto.CreateBookingRequest{CheckIn: "2030-05-01", CheckOut: "2030-05-04"}).ParseStay()
	require.NoError(t, err)

	filter := dto.OverlapFilter("f-1", stay)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.status != :status")
	assert.Contains(t, where, "bookings.check_in < :stay_check_out")
	assert.Contains(t, where, "bookings.check_out > :stay_check_in")
	assert.Equal(t, model.StatusCancelled, args["status"])
	assert.Equal(t, stay.CheckOut, args["stay_check_out"])
}
