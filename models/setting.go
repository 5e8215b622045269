package models

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	SettingTypeString  = "string"
	SettingTypeBoolean = "boolean"
	SettingTypeInteger = "integer"
	SettingTypeFloat   = "float"
	SettingTypeJSON    = "json"
)

// Setting is a per-locale key-value configuration row. At most one row
// exists per (key, locale) pair.
type Setting struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Key         string `json:"key" gorm:"uniqueIndex:idx_settings_key_locale;not null"`
	Locale      string `json:"locale" gorm:"uniqueIndex:idx_settings_key_locale;type:varchar(10);not null"`
	Value       string `json:"value" gorm:"type:text"`
	Type        string `json:"type" gorm:"type:varchar(20);not null;default:string"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingStore resolves typed settings with locale fallback. The fallback
// locale is injected so lookups stay a pure function of their arguments.
type SettingStore struct {
	DB             *gorm.DB
	FallbackLocale string
}

func NewSettingStore(db *gorm.DB, fallbackLocale string) *SettingStore {
	return &SettingStore{DB: db, FallbackLocale: fallbackLocale}
}

// Get looks up (key, locale), retries at (key, fallback locale) when the
// requested locale has no row, and returns def verbatim when neither
// exists. Found values are coerced per their stored type. A row whose
// json-typed value fails to decode is treated as absent and yields def.
func (s *SettingStore) Get(key string, def any, locale string) any {
	var setting Setting
	err := s.DB.Where("key = ? AND locale = ?", key, locale).First(&setting).Error
	if err == nil {
		if v, ok := castSettingValue(&setting); ok {
			return v
		}
		return def
	}

	if locale != s.FallbackLocale {
		err = s.DB.Where("key = ? AND locale = ?", key, s.FallbackLocale).First(&setting).Error
		if err == nil {
			if v, ok := castSettingValue(&setting); ok {
				return v
			}
		}
	}

	return def
}

// Set upserts the (key, locale) row, always replacing value, type and
// description.
func (s *SettingStore) Set(key, value, settingType, description, locale string) error {
	var setting Setting
	// Map-based Assign so empty strings still overwrite existing fields.
	return s.DB.
		Where(Setting{Key: key, Locale: locale}).
		Assign(map[string]interface{}{
			"value":       value,
			"type":        settingType,
			"description": description,
		}).
		FirstOrCreate(&setting).Error
}

// castSettingValue coerces the stored text per the row's type. The second
// return is false only for malformed json values.
func castSettingValue(setting *Setting) (any, bool) {
	switch setting.Type {
	case SettingTypeBoolean:
		// Truthy cast: empty string and "0" are false, anything else true.
		return setting.Value != "" && setting.Value != "0", true
	case SettingTypeInteger:
		n, _ := strconv.Atoi(setting.Value)
		return n, true
	case SettingTypeFloat:
		f, _ := strconv.ParseFloat(setting.Value, 64)
		return f, true
	case SettingTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(setting.Value), &v); err != nil {
			return nil, false
		}
		return v, true
	default:
		return setting.Value, true
	}
}
