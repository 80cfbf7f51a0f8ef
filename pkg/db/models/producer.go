package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/angelmondragon/producers-backend/pkg/types"
)

// Producer is one local vendor or artisan listed in the catalog.
type Producer struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey"`
	Name        string                      `gorm:"column:name;size:255;not null;index:idx_producers_name"`
	Type        types.TagList               `gorm:"column:type;not null;index:idx_producers_type"`
	Description string                      `gorm:"column:description;not null;default:''"`
	Phone       *string                     `gorm:"column:phone;size:20"`
	MobilePhone *string                     `gorm:"column:mobile_phone;size:20"`
	Email       *string                     `gorm:"column:email;size:255"`
	Website     *string                     `gorm:"column:website;size:255"`
	Street      *string                     `gorm:"column:street;size:200"`
	Number      *string                     `gorm:"column:number;size:20"`
	City        string                      `gorm:"column:city;size:100;not null;default:'';index:idx_producers_city"`
	State       string                      `gorm:"column:state;size:50;not null;default:''"`
	ZipCode     *string                     `gorm:"column:zip_code;size:10"`
	Latitude    decimal.NullDecimal         `gorm:"column:latitude;type:numeric(9,6)"`
	Longitude   decimal.NullDecimal         `gorm:"column:longitude;type:numeric(9,6)"`
	Facebook    *string                     `gorm:"column:facebook;size:255"`
	Instagram   *string                     `gorm:"column:instagram;size:255"`
	Twitter     *string                     `gorm:"column:twitter;size:255"`
	Youtube     *string                     `gorm:"column:youtube;size:255"`
	Tiktok      *string                     `gorm:"column:tiktok;size:255"`
	MainImage   *string                     `gorm:"column:main_image;size:255"`
	Products    datatypes.JSONSlice[string] `gorm:"column:products"`
	IsActive    bool                        `gorm:"column:is_active;not null"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime"`

	GalleryImages []ProducerImage `gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE"`
}

func (Producer) TableName() string {
	return "producers"
}

// BeforeCreate assigns the id when the caller did not.
func (p *Producer) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Type == nil {
		p.Type = types.TagList{}
	}
	return nil
}
