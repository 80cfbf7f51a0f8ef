package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProducerImage is a gallery image owned by exactly one producer.
// Position backs the public "order" field.
type ProducerImage struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProducerID uuid.UUID `gorm:"column:producer_id;type:uuid;not null;index:idx_producer_images_producer_position,priority:1"`
	Image      string    `gorm:"column:image;size:255;not null"`
	Caption    *string   `gorm:"column:caption;size:200"`
	Position   int       `gorm:"column:position;not null;default:0;index:idx_producer_images_producer_position,priority:2"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (ProducerImage) TableName() string {
	return "producer_images"
}

func (i *ProducerImage) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
