package dto

import (
	"farmstay/internal/domains/user/model"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Phone = user.Phone
	r.Role = user.Role
	r.IsActive = user.IsActive

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}

// UpdateUserRequest is the admin edit. Pointers let false and empty values through TransformFields.
type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=20"`
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=visitor owner admin"`
	IsActive *bool   `db:"is_active" json:"is_active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=20"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// Filter builds the admin listing filter from query values.
func Filter(search, role, isActive string) gDto.FilterGroup {
	filter := gDto.NewFilterGroup()

	if search != "" {
		filter.Add(gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_name", Field: model.FieldFullName, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_phone", Field: model.FieldPhone, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	filter.AddIf(role, gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if active := shared.ConvertStringToBool(isActive); active != nil {
		filter.Add(gDto.Filter{Field: model.FieldIsActive, Value: *active, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return filter
}
