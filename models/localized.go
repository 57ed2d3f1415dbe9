package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	LocaleEN = "en"
	LocaleAR = "ar"
)

// NormalizeLocale maps anything outside the supported set to English.
func NormalizeLocale(locale string) string {
	if locale == LocaleAR {
		return LocaleAR
	}
	return LocaleEN
}

// LocalizedText holds the two language variants of a textual field and is
// persisted as a single JSON column. It marshals to the full {en, ar} map,
// which is what admin edit screens consume; public responses go through
// Translate instead.
type LocalizedText struct {
	En string `json:"en" validate:"required"`
	Ar string `json:"ar" validate:"required"`
}

// Translate resolves the variant for the given locale. If the active locale
// is empty the other language is used; only when both are empty does it
// return an empty string.
func (t LocalizedText) Translate(locale string) string {
	if NormalizeLocale(locale) == LocaleAR {
		if t.Ar != "" {
			return t.Ar
		}
		return t.En
	}
	if t.En != "" {
		return t.En
	}
	return t.Ar
}

func (t LocalizedText) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *LocalizedText) Scan(value interface{}) error {
	if value == nil {
		*t = LocalizedText{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for LocalizedText: %T", value)
	}
	if len(data) == 0 {
		*t = LocalizedText{}
		return nil
	}
	return json.Unmarshal(data, t)
}

func (LocalizedText) GormDataType() string {
	return "json"
}

func (LocalizedText) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	}
	return "JSON"
}

// localeColumn builds the SQL expression extracting one language variant out
// of a localized JSON column, per dialect so that the same query runs on
// Postgres and on the sqlite test databases. The locale is normalized first,
// never interpolated from raw user input.
func localeColumn(db *gorm.DB, column, locale string) string {
	locale = NormalizeLocale(locale)
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("%s ->> '%s'", column, locale)
	}
	return fmt.Sprintf("json_extract(%s, '$.%s')", column, locale)
}
