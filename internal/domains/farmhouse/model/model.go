package model

import (
	"farmstay/shared/constant"
	"farmstay/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "farmhouses"
	EntityName = "farmhouse"

	FieldID            = "id"
	FieldOwnerID       = "owner_id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldBedrooms      = "bedrooms"
	FieldBathrooms     = "bathrooms"
	FieldAmenities     = "amenities"
	FieldImages        = "images"
	FieldIsActive      = "is_active"
	FieldRating        = "rating"
	FieldTotalReviews  = "total_reviews"
)

// SortableFields may be passed as sort_by on farmhouse listings.
var SortableFields = []string{FieldPricePerNight, FieldRating, FieldName, FieldMaxGuests, constant.FieldCreatedAt}

type Farmhouse struct {
	ID            string         `db:"id"`
	OwnerID       string         `db:"owner_id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	Location      string         `db:"location"`
	PricePerNight float64        `db:"price_per_night"`
	MaxGuests     int            `db:"max_guests"`
	Bedrooms      int            `db:"bedrooms"`
	Bathrooms     int            `db:"bathrooms"`
	Amenities     pq.StringArray `db:"amenities"`
	Images        pq.StringArray `db:"images"`
	IsActive      bool           `db:"is_active"`
	Rating        float64        `db:"rating"`
	TotalReviews  int            `db:"total_reviews"`
	model.Metadata
}

// OwnedBy reports whether userID may manage the listing as its owner.
func (f Farmhouse) OwnedBy(userID string) bool {
	return f.ID != "" && f.OwnerID == userID
}

// BookedRange is a stay that blocks dates on the calendar.
type BookedRange struct {
	CheckIn  time.Time `db:"check_in"`
	CheckOut time.Time `db:"check_out"`
	Status   string    `db:"status"`
}
