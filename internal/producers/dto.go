package producers

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	"github.com/angelmondragon/producers-backend/pkg/types"
)

const missingValue = "-"

// ProducerDTO is the public representation of a producer.
type ProducerDTO struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Type          types.TagList       `json:"type"`
	TypeDisplay   string              `json:"type_display"`
	Description   string              `json:"description"`
	Phone         *string             `json:"phone"`
	MobilePhone   *string             `json:"mobile_phone"`
	Email         *string             `json:"email"`
	Website       *string             `json:"website"`
	Address       types.Address       `json:"address"`
	Facebook      *string             `json:"facebook"`
	Instagram     *string             `json:"instagram"`
	Twitter       *string             `json:"twitter"`
	Youtube       *string             `json:"youtube"`
	Tiktok        *string             `json:"tiktok"`
	Latitude      decimal.NullDecimal `json:"latitude"`
	Longitude     decimal.NullDecimal `json:"longitude"`
	MainImage     *string             `json:"main_image"`
	GalleryImages []GalleryImageDTO   `json:"gallery_images"`
	Products      []string            `json:"products"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	IsActive      bool                `json:"is_active"`
}

// GalleryImageDTO is one gallery image as exposed publicly.
type GalleryImageDTO struct {
	ID       uuid.UUID `json:"id"`
	ImageURL *string   `json:"image_url"`
	Caption  *string   `json:"caption"`
	Order    int       `json:"order"`
}

// AdminGalleryImageDTO adds the stored reference and upload time for gallery editing.
type AdminGalleryImageDTO struct {
	GalleryImageDTO
	Image      string    `json:"image"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AdminProducerRow is one line of the administrative listing.
type AdminProducerRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TypeDisplay string    `json:"type_display"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModel maps the persisted producer into its public representation.
func FromModel(m *models.Producer, urls URLBuilder) *ProducerDTO {
	if m == nil {
		return nil
	}

	tags := m.Type
	if tags == nil {
		tags = types.TagList{}
	}
	products := []string(m.Products)
	if products == nil {
		products = []string{}
	}

	return &ProducerDTO{
		ID:            m.ID,
		Name:          m.Name,
		Type:          tags,
		TypeDisplay:   tags.Display(),
		Description:   m.Description,
		Phone:         m.Phone,
		MobilePhone:   m.MobilePhone,
		Email:         m.Email,
		Website:       m.Website,
		Address:       types.NewAddress(m.Street, m.Number, m.City, m.State, m.ZipCode),
		Facebook:      m.Facebook,
		Instagram:     m.Instagram,
		Twitter:       m.Twitter,
		Youtube:       m.Youtube,
		Tiktok:        m.Tiktok,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		MainImage:     urls.Resolve(m.MainImage),
		GalleryImages: galleryFromModels(m.GalleryImages, urls),
		Products:      products,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		IsActive:      m.IsActive,
	}
}

func galleryFromModels(images []models.ProducerImage, urls URLBuilder) []GalleryImageDTO {
	sorted := sortedImages(images)
	out := make([]GalleryImageDTO, 0, len(sorted))
	for i := range sorted {
		out = append(out, galleryImageFromModel(&sorted[i], urls))
	}
	return out
}

func galleryImageFromModel(img *models.ProducerImage, urls URLBuilder) GalleryImageDTO {
	ref := img.Image
	return GalleryImageDTO{
		ID:       img.ID,
		ImageURL: urls.Resolve(&ref),
		Caption:  img.Caption,
		Order:    img.Position,
	}
}

// AdminGalleryFromModels maps gallery images for the administrative editor.
func AdminGalleryFromModels(images []models.ProducerImage, urls URLBuilder) []AdminGalleryImageDTO {
	sorted := sortedImages(images)
	out := make([]AdminGalleryImageDTO, 0, len(sorted))
	for i := range sorted {
		out = append(out, AdminGalleryImageDTO{
			GalleryImageDTO: galleryImageFromModel(&sorted[i], urls),
			Image:           sorted[i].Image,
			UploadedAt:      sorted[i].UploadedAt,
		})
	}
	return out
}

// sortedImages orders images by position then upload time without touching the input.
func sortedImages(images []models.ProducerImage) []models.ProducerImage {
	sorted := make([]models.ProducerImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].UploadedAt.Before(sorted[j].UploadedAt)
	})
	return sorted
}

// AdminRowFromModel maps a producer into an administrative list row.
func AdminRowFromModel(m *models.Producer) AdminProducerRow {
	return AdminProducerRow{
		ID:          m.ID,
		Name:        m.Name,
		TypeDisplay: orMissing(m.Type.Display()),
		City:        orMissing(m.City),
		State:       m.State,
		Phone:       firstPresent(m.Phone, m.MobilePhone),
		Email:       firstPresent(m.Email),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func firstPresent(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return missingValue
}

func orMissing(value string) string {
	if value == "" {
		return missingValue
	}
	return value
}
