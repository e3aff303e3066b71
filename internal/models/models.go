package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UserID    string `gorm:"column:user_id;size:53;primaryKey" json:"user_id"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null" json:"email"`
}

type Manufacturer struct {
	MfrID int `gorm:"column:mfr_id;primaryKey;autoIncrement" json:"mfr_id"`
	// Stored verbatim; matching is done on a normalized form (see services.NormalizeName).
	MfrName       string `gorm:"column:mfr_name;size:255;not null;uniqueIndex" json:"mfr_name"`
	NumberOfParts int    `gorm:"not null;default:0" json:"number_of_parts"`
}

type Part struct {
	PartUPC      string       `gorm:"column:part_upc;size:12;primaryKey" json:"part_upc"`
	// Placement uniqueness is guarded in the service (empty placements are
	// legal and would collide under a DB unique index).
	Placement    string       `gorm:"size:8;not null;index" json:"placement"`
	MfrPN        string       `gorm:"column:mfr_pn;size:255" json:"mfr_pn"`
	MfrID        int          `gorm:"column:mfr_id;not null;index" json:"mfr_id"`
	Manufacturer Manufacturer `gorm:"foreignKey:MfrID;references:MfrID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Description  string       `gorm:"not null" json:"description"`
	URL          string       `gorm:"column:url" json:"url"`
	Quantity     int          `gorm:"not null;default:1" json:"quantity"`
	DateAdded    time.Time    `gorm:"not null" json:"date_added"`
}

// Checkout is the live record of a part being held by a user. Its existence is
// the part's CHECKED_OUT state; there is no status column and no history table.
type Checkout struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CheckedOutPart    string    `gorm:"column:checked_out_part;size:12;not null;uniqueIndex" json:"checked_out_part"`
	Part              Part      `gorm:"foreignKey:CheckedOutPart;references:PartUPC;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CurrentHolder     string    `gorm:"column:current_holder;size:53;not null;index" json:"current_holder"`
	User              User      `gorm:"foreignKey:CurrentHolder;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CheckoutTimestamp time.Time `gorm:"not null" json:"checkout_timestamp"`
}

func (Checkout) TableName() string { return "part_locations" }

func (c *Checkout) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
