package producers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	"github.com/angelmondragon/producers-backend/pkg/types"
	"github.com/angelmondragon/producers-backend/pkg/validation"
)

const coordinatePlaces = 6

var (
	latitudeBound  = decimal.NewFromInt(90)
	longitudeBound = decimal.NewFromInt(180)
)

// producerRules are the write-time constraints checked on the merged record.
type producerRules struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Phone       *string  `json:"phone" validate:"omitempty,max=20,pt_phone"`
	MobilePhone *string  `json:"mobile_phone" validate:"omitempty,max=20,pt_phone"`
	Email       *string  `json:"email" validate:"omitempty,max=255,loose_email"`
	Website     *string  `json:"website" validate:"omitempty,max=255,http_url"`
	Street      *string  `json:"street" validate:"omitempty,max=200"`
	Number      *string  `json:"number" validate:"omitempty,max=20"`
	City        string   `json:"city" validate:"max=100"`
	State       string   `json:"state" validate:"max=50"`
	ZipCode     *string  `json:"zip_code" validate:"omitempty,max=10"`
	Facebook    *string  `json:"facebook" validate:"omitempty,max=255,http_url"`
	Instagram   *string  `json:"instagram" validate:"omitempty,max=255,http_url"`
	Twitter     *string  `json:"twitter" validate:"omitempty,max=255,http_url"`
	Youtube     *string  `json:"youtube" validate:"omitempty,max=255,http_url"`
	Tiktok      *string  `json:"tiktok" validate:"omitempty,max=255,http_url"`
	MainImage   *string  `json:"main_image" validate:"omitempty,max=255"`
	Type        []string `json:"type" validate:"dive,max=100"`
	Products    []string `json:"products" validate:"dive,max=255"`
}

func rulesFor(p *models.Producer) producerRules {
	return producerRules{
		Name:        p.Name,
		Phone:       p.Phone,
		MobilePhone: p.MobilePhone,
		Email:       p.Email,
		Website:     p.Website,
		Street:      p.Street,
		Number:      p.Number,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Facebook:    p.Facebook,
		Instagram:   p.Instagram,
		Twitter:     p.Twitter,
		Youtube:     p.Youtube,
		Tiktok:      p.Tiktok,
		MainImage:   p.MainImage,
		Type:        p.Type,
		Products:    p.Products,
	}
}

// validateProducer checks the merged record and adds every failure to errs.
func validateProducer(v *validator.Validate, p *models.Producer, errs types.FieldErrors) {
	if fields, ok := validation.Fields(v.Struct(rulesFor(p))); ok {
		errs.Merge(fields)
	}
	checkCoordinate(p.Latitude, latitudeBound, "latitude", errs)
	checkCoordinate(p.Longitude, longitudeBound, "longitude", errs)
}

func checkCoordinate(value decimal.NullDecimal, bound decimal.Decimal, field string, errs types.FieldErrors) {
	if !value.Valid {
		return
	}
	d := value.Decimal
	if d.LessThan(bound.Neg()) || d.GreaterThan(bound) {
		errs.Add(field, fmt.Sprintf("must be between %s and %s", bound.Neg(), bound))
		return
	}
	if !d.Equal(d.Round(coordinatePlaces)) {
		errs.Add(field, fmt.Sprintf("must have at most %d decimal places", coordinatePlaces))
	}
}

// validateGallery checks a gallery replacement before it reaches the store.
func validateGallery(v *validator.Validate, in ReplaceGalleryInput, errs types.FieldErrors) {
	if fields, ok := validation.Fields(v.Struct(in)); ok {
		errs.Merge(fields)
	}
	seen := make(map[string]int, len(in.Images))
	for i, img := range in.Images {
		if img.ID == nil {
			continue
		}
		key := img.ID.String()
		if first, dup := seen[key]; dup {
			errs.Add(fmt.Sprintf("images[%d].id", i), fmt.Sprintf("duplicates images[%d].id", first))
			continue
		}
		seen[key] = i
	}
}
