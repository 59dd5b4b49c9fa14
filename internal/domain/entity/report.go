package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageRefMaxLength bounds how much of the submitted data URI is persisted
const ImageRefMaxLength = 100

// VeneerStyle is one recommended veneer style of a report
type VeneerStyle struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Compatibility int    `json:"compatibility"`
	ImageURL      string `json:"image_url"`
}

// VeneerStyles is an ordered list stored as JSONB
type VeneerStyles []VeneerStyle

// Value returns json value, implement driver.Valuer interface
func (s VeneerStyles) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan scan value into VeneerStyles, implements sql.Scanner interface
func (s *VeneerStyles) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []VeneerStyle
	err := json.Unmarshal(bytes, &result)
	*s = VeneerStyles(result)
	return err
}

// Report is an immutable smile-analysis result owned by a user
type Report struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	FaceShape         string       `gorm:"type:varchar(50);not null" json:"face_shape"`
	TeethColor        string       `gorm:"type:varchar(20);not null" json:"teeth_color"`
	TeethAlignment    string       `gorm:"type:varchar(50);not null" json:"teeth_alignment"`
	TeethSize         string       `gorm:"type:varchar(50);not null" json:"teeth_size"`
	RecommendedStyles VeneerStyles `gorm:"type:jsonb;not null" json:"recommended_styles"`
	ImageRef          string       `gorm:"type:varchar(100)" json:"image_ref,omitempty"`
	CreatedAt         time.Time    `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// TruncateImageRef keeps only the leading part of a data URI
func TruncateImageRef(image string) string {
	if len(image) <= ImageRefMaxLength {
		return image
	}
	return image[:ImageRefMaxLength]
}
