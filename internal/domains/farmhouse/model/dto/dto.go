package dto

import (
	"farmstay/internal/domains/farmhouse/model"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gModel "farmstay/shared/model"
	"farmstay/shared/timezone"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MaxImageSize caps a single listing photo.
const MaxImageSize = 2 << 20

type CreateFarmhouseRequest struct {
	// OwnerID is honoured for admins only, owners always create for themselves.
	OwnerID       string   `json:"owner_id,omitempty"    validate:"omitempty,uuid"`
	Name          string   `json:"name"                  validate:"required,min=3,max=150"`
	Description   string   `json:"description"           validate:"omitempty,max=5000"`
	Location      string   `json:"location"              validate:"required,min=2,max=200"`
	PricePerNight float64  `json:"price_per_night"       validate:"required,gt=0"`
	MaxGuests     int      `json:"max_guests"            validate:"required,min=1,max=100"`
	Bedrooms      int      `json:"bedrooms"              validate:"min=0,max=50"`
	Bathrooms     int      `json:"bathrooms"             validate:"min=0,max=50"`
	Amenities     []string `json:"amenities,omitempty"   validate:"omitempty,max=30,dive,min=1,max=50"`
}

func (c *CreateFarmhouseRequest) ToModel(ownerID, actor string) model.Farmhouse {
	amenities := pq.StringArray{}
	if c.Amenities != nil {
		amenities = c.Amenities
	}

	return model.Farmhouse{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          c.Name,
		Description:   c.Description,
		Location:      c.Location,
		PricePerNight: c.PricePerNight,
		MaxGuests:     c.MaxGuests,
		Bedrooms:      c.Bedrooms,
		Bathrooms:     c.Bathrooms,
		Amenities:     amenities,
		Images:        pq.StringArray{},
		IsActive:      true,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateFarmhouseRequest struct {
	Name          *string         `db:"name"            json:"name,omitempty"            validate:"omitempty,min=3,max=150"`
	Description   *string         `db:"description"     json:"description,omitempty"     validate:"omitempty,max=5000"`
	Location      *string         `db:"location"        json:"location,omitempty"        validate:"omitempty,min=2,max=200"`
	PricePerNight *float64        `db:"price_per_night" json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	MaxGuests     *int            `db:"max_guests"      json:"max_guests,omitempty"      validate:"omitempty,min=1,max=100"`
	Bedrooms      *int            `db:"bedrooms"        json:"bedrooms,omitempty"        validate:"omitempty,min=0,max=50"`
	Bathrooms     *int            `db:"bathrooms"       json:"bathrooms,omitempty"       validate:"omitempty,min=0,max=50"`
	Amenities     *pq.StringArray `db:"amenities"       json:"amenities,omitempty"       swaggertype:"array,string" validate:"omitempty,max=30,dive,min=1,max=50"`
}

type UpdateActiveRequest struct {
	IsActive *bool `db:"is_active" json:"is_active" validate:"required"`
}

type UploadImageRequest struct {
	File        multipart.File `json:"-"`
	FileName    string         `json:"file_name"    validate:"required"`
	ContentType string         `json:"content_type" validate:"required,oneof=image/png image/jpeg"`
	Size        int64          `json:"size"         validate:"gt=0,lte=2097152"`
}

func (u *UploadImageRequest) FromFileHeader(file multipart.File, header *multipart.FileHeader) {
	u.File = file
	u.FileName = header.Filename
	u.ContentType = header.Header.Get(constant.RequestHeaderContentType)
	u.Size = header.Size
}

type UploadImageResponse struct {
	URL    string   `json:"url"`
	Images []string `json:"images"`
}

type FarmhouseResponse struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"owner_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"price_per_night"`
	MaxGuests     int      `json:"max_guests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsActive      bool     `json:"is_active"`
	Rating        float64  `json:"rating"`
	TotalReviews  int      `json:"total_reviews"`
	gDto.Metadata
}

func (r *FarmhouseResponse) FromModel(farmhouse model.Farmhouse) {
	r.ID = farmhouse.ID
	r.OwnerID = farmhouse.OwnerID
	r.Name = farmhouse.Name
	r.Description = farmhouse.Description
	r.Location = farmhouse.Location
	r.PricePerNight = farmhouse.PricePerNight
	r.MaxGuests = farmhouse.MaxGuests
	r.Bedrooms = farmhouse.Bedrooms
	r.Bathrooms = farmhouse.Bathrooms
	r.Amenities = nonNil(farmhouse.Amenities)
	r.Images = nonNil(farmhouse.Images)
	r.IsActive = farmhouse.IsActive
	r.Rating = farmhouse.Rating
	r.TotalReviews = farmhouse.TotalReviews
	r.Metadata.FromModel(farmhouse.Metadata)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

type GetFarmhousesResponse struct {
	Farmhouses []FarmhouseResponse `json:"farmhouses"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetFarmhousesResponse) FromModels(models []model.Farmhouse, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Farmhouses = make([]FarmhouseResponse, len(models))
	for i, mod := range models {
		r.Farmhouses[i].FromModel(mod)
	}
}

type BookedRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Status   string `json:"status"`
}

type AvailabilityResponse struct {
	FarmhouseID string                `json:"farmhouse_id"`
	From        string                `json:"from"`
	To          string                `json:"to"`
	Booked      []BookedRangeResponse `json:"booked"`
}

func (r *AvailabilityResponse) FromModels(farmhouseID string, from, to time.Time, ranges []model.BookedRange) {
	r.FarmhouseID = farmhouseID
	r.From = timezone.Format(from, constant.DateOnlyFormat)
	r.To = timezone.Format(to, constant.DateOnlyFormat)

	r.Booked = make([]BookedRangeResponse, len(ranges))
	for i, booked := range ranges {
		r.Booked[i] = BookedRangeResponse{
			CheckIn:  booked.CheckIn.Format(constant.DateOnlyFormat),
			CheckOut: booked.CheckOut.Format(constant.DateOnlyFormat),
			Status:   booked.Status,
		}
	}
}

// SearchQuery holds the public listing filters as they arrive on the query string.
type SearchQuery struct {
	Search   string
	Location string
	MinPrice string
	MaxPrice string
	Guests   string
	Bedrooms string
	Amenity  string
}

// SearchFilter only ever matches active listings.
func SearchFilter(query SearchQuery) gDto.FilterGroup {
	filter := gDto.NewFilterGroup(
		gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)

	if query.Search != "" {
		filter.Add(gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: query.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_location", Field: model.FieldLocation, Value: query.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_description", Field: model.FieldDescription, Value: query.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	filter.AddIf(query.Location, gDto.Filter{Field: model.FieldLocation, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	filter.AddIf(query.Amenity, gDto.Filter{Field: model.FieldAmenities, Operator: gDto.FilterOperatorContains, Table: model.TableName})

	if minPrice := shared.ConvertStringToFloat(query.MinPrice); minPrice != nil {
		filter.Add(gDto.Filter{ArgName: "min_price", Field: model.FieldPricePerNight, Value: *minPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if maxPrice := shared.ConvertStringToFloat(query.MaxPrice); maxPrice != nil {
		filter.Add(gDto.Filter{ArgName: "max_price", Field: model.FieldPricePerNight, Value: *maxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if guests := shared.ConvertStringToInt(query.Guests); guests != nil {
		filter.Add(gDto.Filter{Field: model.FieldMaxGuests, Value: *guests, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if bedrooms := shared.ConvertStringToInt(query.Bedrooms); bedrooms != nil {
		filter.Add(gDto.Filter{Field: model.FieldBedrooms, Value: *bedrooms, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	return filter
}

// AdminFilter lists every listing, optionally narrowed to one owner or active flag.
func AdminFilter(ownerID, isActive string) gDto.FilterGroup {
	filter := gDto.NewFilterGroup()

	filter.AddIf(ownerID, gDto.Filter{Field: model.FieldOwnerID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if active := shared.ConvertStringToBool(isActive); active != nil {
		filter.Add(gDto.Filter{Field: model.FieldIsActive, Value: *active, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return filter
}
