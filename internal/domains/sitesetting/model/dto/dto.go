package dto

import (
	"farmstay/internal/domains/sitesetting/model"
	gModel "farmstay/shared/model"
	"farmstay/shared/timezone"
)

// KeyTag constrains setting keys to lowercase slugs such as contact_phone.
const KeyTag = "required,min=2,max=64,lowercase,excludesall= /"

type UpsertRequest struct {
	Value string `json:"value" validate:"max=10000"`
}

func (u *UpsertRequest) ToModel(key, actor string) model.SiteSetting {
	return model.SiteSetting{
		Key:      key,
		Value:    u.Value,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type SiteSettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *SiteSettingResponse) FromModel(setting model.SiteSetting) {
	r.Key = setting.Key
	r.Value = setting.Value
}

// SettingsResponse maps every key to its value.
type SettingsResponse map[string]string

func FromModels(models []model.SiteSetting) SettingsResponse {
	res := make(SettingsResponse, len(models))
	for _, setting := range models {
		res[setting.Key] = setting.Value
	}

	return res
}
