package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"helios/internal/errors"
)

// StringList stores an ordered list of strings as a JSON text column, which
// works identically on PostgreSQL and SQLite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, errors.Wrap(err, "encode string list")
	}

	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil

		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported string list source %T", src)
	}

	return json.Unmarshal(raw, (*[]string)(l))
}

// ProductModel mirrors the 'products' table. The primary key is the
// human-readable slug, e.g. "5kva-inverter-system".
type ProductModel struct {
	ID                 string `gorm:"type:varchar(100);primaryKey"`
	Title              string `gorm:"type:varchar(255);not null"`
	Price              int64  `gorm:"not null"`
	PriceWithoutPanels int64
	Category           string     `gorm:"type:varchar(50);not null;index"`
	Description        string     `gorm:"type:text"`
	Usage              string     `gorm:"type:text"`
	Components         StringList `gorm:"type:text"`
	IsFeatured         bool
	LoadCapacity       string `gorm:"type:varchar(255)"`
	Badge              string `gorm:"type:varchar(50)"`
	ImageURL           string `gorm:"type:varchar(512)"`
	Stock              int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
