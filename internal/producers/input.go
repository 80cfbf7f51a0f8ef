package producers

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	"github.com/angelmondragon/producers-backend/pkg/types"
)

// ProducerInput is the write payload for create, replace and patch. Every field
// records whether it was present so patches only touch what the client sent.
type ProducerInput struct {
	Name        types.Optional[string]          `json:"name"`
	Type        types.Optional[types.TagList]   `json:"type"`
	Description types.Optional[string]          `json:"description"`
	Phone       types.Optional[string]          `json:"phone"`
	MobilePhone types.Optional[string]          `json:"mobile_phone"`
	Email       types.Optional[string]          `json:"email"`
	Website     types.Optional[string]          `json:"website"`
	Street      types.Optional[string]          `json:"street"`
	Number      types.Optional[string]          `json:"number"`
	City        types.Optional[string]          `json:"city"`
	State       types.Optional[string]          `json:"state"`
	ZipCode     types.Optional[string]          `json:"zip_code"`
	Latitude    types.Optional[decimal.Decimal] `json:"latitude"`
	Longitude   types.Optional[decimal.Decimal] `json:"longitude"`
	Facebook    types.Optional[string]          `json:"facebook"`
	Instagram   types.Optional[string]          `json:"instagram"`
	Twitter     types.Optional[string]          `json:"twitter"`
	Youtube     types.Optional[string]          `json:"youtube"`
	Tiktok      types.Optional[string]          `json:"tiktok"`
	MainImage   types.Optional[string]          `json:"main_image"`
	Products    types.Optional[[]string]        `json:"products"`
	IsActive    types.Optional[bool]            `json:"is_active"`

	// Read-only keys echoed back from a GET are accepted and ignored.
	ID            json.RawMessage `json:"id,omitempty"`
	TypeDisplay   json.RawMessage `json:"type_display,omitempty"`
	Address       json.RawMessage `json:"address,omitempty"`
	GalleryImages json.RawMessage `json:"gallery_images,omitempty"`
	CreatedAt     json.RawMessage `json:"created_at,omitempty"`
	UpdatedAt     json.RawMessage `json:"updated_at,omitempty"`
}

// GalleryImageInput is one entry of a gallery replacement. Entries with an id
// update that image; entries without one create a new image.
type GalleryImageInput struct {
	ID      *uuid.UUID `json:"id"`
	Image   string     `json:"image" validate:"required,max=255"`
	Caption *string    `json:"caption" validate:"omitempty,max=200"`
	Order   *int       `json:"order" validate:"omitempty,min=0"`
}

// ReplaceGalleryInput is the body of a gallery replacement.
type ReplaceGalleryInput struct {
	Images []GalleryImageInput `json:"images" validate:"dive"`
}

// newProducer returns a producer holding the column defaults.
func newProducer() *models.Producer {
	return &models.Producer{
		Type:     types.TagList{},
		IsActive: true,
	}
}

// applyTo merges the input into p. With full set, absent fields are reset to
// their defaults; otherwise only present fields change. Explicit nulls on
// non-nullable fields are reported in errs.
func (in ProducerInput) applyTo(p *models.Producer, full bool, errs types.FieldErrors) {
	setText(&p.Name, in.Name, full, "", "name", errs)
	setText(&p.Description, in.Description, full, "", "description", errs)
	setText(&p.City, in.City, full, "", "city", errs)
	setText(&p.State, in.State, full, "", "state", errs)

	setNullable(&p.Phone, in.Phone, full)
	setNullable(&p.MobilePhone, in.MobilePhone, full)
	setNullable(&p.Email, in.Email, full)
	setNullable(&p.Website, in.Website, full)
	setNullable(&p.Street, in.Street, full)
	setNullable(&p.Number, in.Number, full)
	setNullable(&p.ZipCode, in.ZipCode, full)
	setNullable(&p.Facebook, in.Facebook, full)
	setNullable(&p.Instagram, in.Instagram, full)
	setNullable(&p.Twitter, in.Twitter, full)
	setNullable(&p.Youtube, in.Youtube, full)
	setNullable(&p.Tiktok, in.Tiktok, full)
	setNullable(&p.MainImage, in.MainImage, full)

	setDecimal(&p.Latitude, in.Latitude, full)
	setDecimal(&p.Longitude, in.Longitude, full)

	switch {
	case in.Type.Null:
		errs.Add("type", "may not be null")
	case in.Type.Set:
		p.Type = types.NewTagList(in.Type.Value...)
	case full:
		p.Type = types.TagList{}
	}

	switch {
	case in.Products.Present():
		p.Products = datatypes.JSONSlice[string](cleanList(in.Products.Value))
	case in.Products.Null || full:
		p.Products = nil
	}

	switch {
	case in.IsActive.Null:
		errs.Add("is_active", "may not be null")
	case in.IsActive.Set:
		p.IsActive = in.IsActive.Value
	case full:
		p.IsActive = true
	}
}

func setText(dst *string, value types.Optional[string], full bool, def, field string, errs types.FieldErrors) {
	switch {
	case value.Null:
		errs.Add(field, "may not be null")
	case value.Set:
		*dst = strings.TrimSpace(value.Value)
	case full:
		*dst = def
	}
}

func setNullable(dst **string, value types.Optional[string], full bool) {
	switch {
	case value.Present():
		trimmed := strings.TrimSpace(value.Value)
		if trimmed == "" {
			*dst = nil
			return
		}
		*dst = &trimmed
	case value.Null || full:
		*dst = nil
	}
}

func setDecimal(dst *decimal.NullDecimal, value types.Optional[decimal.Decimal], full bool) {
	switch {
	case value.Present():
		*dst = decimal.NewNullDecimal(value.Value)
	case value.Null || full:
		*dst = decimal.NullDecimal{}
	}
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// toModels converts gallery entries, defaulting each order to its list position.
func (in ReplaceGalleryInput) toModels() []models.ProducerImage {
	images := make([]models.ProducerImage, 0, len(in.Images))
	for i, entry := range in.Images {
		img := models.ProducerImage{
			Image:    strings.TrimSpace(entry.Image),
			Position: i,
		}
		if entry.ID != nil {
			img.ID = *entry.ID
		}
		if entry.Order != nil {
			img.Position = *entry.Order
		}
		if entry.Caption != nil {
			if caption := strings.TrimSpace(*entry.Caption); caption != "" {
				img.Caption = &caption
			}
		}
		images = append(images, img)
	}
	return images
}
