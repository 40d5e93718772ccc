package model

import (
	"farmstay/shared/constant"
	"farmstay/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldIsActive  = "is_active"
	FieldGoogleID  = "google_id"
	FieldLastLogin = "last_login"
)

// SortableFields may be passed as sort_by on user listings.
var SortableFields = []string{constant.FieldCreatedAt, FieldEmail, FieldFullName, FieldRole}

type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Phone     *string    `db:"phone"`
	Role      string     `db:"role"`
	IsActive  bool       `db:"is_active"`
	GoogleID  *string    `db:"google_id"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
