package model

import "farmstay/shared/model"

const (
	TableName  = "site_settings"
	EntityName = "site_setting"

	FieldKey   = "key"
	FieldValue = "value"
)

type SiteSetting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
	model.Metadata
}
