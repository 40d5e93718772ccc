package validator_test

import (
	"farmstay/shared/failure"
	"farmstay/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	FarmhouseID string `json:"farmhouse_id" validate:"required,uuid"`
	CheckIn     string `json:"check_in"     validate:"required,dateonly"`
	Guests      int    `json:"guests"       validate:"gte=1,lte=50"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Status      string `json:"status"       validate:"omitempty,oneof=pending confirmed"`
}

func TestValidateStruct(t *testing.T) {
	valid := func() stayRequest {
		return stayRequest{
			FarmhouseID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			CheckIn:     "2025-05-01",
			Guests:      2,
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "missing farmhouse", mutate: func(r *stayRequest) { r.FarmhouseID = "" }, wantMsg: "farmhouse_id is required"},
		{name: "bad uuid", mutate: func(r *stayRequest) { r.FarmhouseID = "abc" }, wantMsg: "farmhouse_id must be a valid UUID"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckIn = "01-05-2025" }, wantMsg: "check_in must be a date formatted as YYYY-MM-DD"},
		{name: "too few guests", mutate: func(r *stayRequest) { r.Guests = 0 }, wantMsg: "guests must be greater than or equal to 1"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "nope" }, wantMsg: "email must be a valid email address"},
		{name: "bad status", mutate: func(r *stayRequest) { r.Status = "done" }, wantMsg: "status must be one of pending confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(`{"farmhouse_id":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","check_in":"2025-05-01","guests":3}`), &req)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Guests)

	err = validator.Validate(strings.NewReader(`{"guests":`), &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-12-31", "dateonly"))
	assert.NoError(t, validator.ValidateVar("", "dateonly"))
	assert.Error(t, validator.ValidateVar("2025-02-30", "dateonly"))
	assert.Error(t, validator.ValidateVar("guest@", "email"))
}

type listingRequest struct {
	Name        string   `json:"name"         validate:"required,min=3,max=10"`
	Amenities   []string `json:"amenities"    validate:"max=2"`
	Price       float64  `json:"price"        validate:"gt=0"`
	MaxGuests   int      `json:"max_guests"   validate:"min=1"`
	OldPassword string   `json:"old_password"`
	NewPassword string   `json:"new_password" validate:"omitempty,nefield=OldPassword"`
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name    string
		req     listingRequest
		wantMsg string
	}{
		{name: "short name", req: listingRequest{Name: "ab", Price: 1, MaxGuests: 1}, wantMsg: "name must be at least 3 characters"},
		{name: "long name", req: listingRequest{Name: "Green Acre Farm", Price: 1, MaxGuests: 1}, wantMsg: "name must be at most 10 characters"},
		{name: "too many amenities", req: listingRequest{Name: "Barn", Amenities: []string{"wifi", "pool", "bbq"}, Price: 1, MaxGuests: 1}, wantMsg: "amenities must contain at most 2 items"},
		{name: "free stay", req: listingRequest{Name: "Barn", MaxGuests: 1}, wantMsg: "price must be greater than 0"},
		{name: "no guests", req: listingRequest{Name: "Barn", Price: 1}, wantMsg: "max_guests must be greater than or equal to 1"},
		{name: "same password", req: listingRequest{Name: "Barn", Price: 1, MaxGuests: 1, OldPassword: "secret12", NewPassword: "secret12"}, wantMsg: "new_password must differ from OldPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
