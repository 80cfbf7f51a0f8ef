package producers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/producers-backend/internal/repo"
	"github.com/angelmondragon/producers-backend/pkg/db/models"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
)

// UnknownImageError reports a gallery image id that does not belong to the producer.
type UnknownImageError struct {
	Index int
	ID    uuid.UUID
}

func (e *UnknownImageError) Error() string {
	return fmt.Sprintf("gallery image %s at index %d does not belong to producer", e.ID, e.Index)
}

// Repository handles producer persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to producer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "position"}},
		{Column: clause.Column{Name: "uploaded_at"}},
		{Column: clause.Column{Name: "id"}},
	}})
}

// Create persists a new producer row.
func (r *Repository) Create(ctx context.Context, producer *models.Producer) error {
	if producer == nil {
		return fmt.Errorf("producer is required")
	}
	return r.DB(ctx).Omit(clause.Associations).Create(producer).Error
}

// FindByID loads a producer with its ordered gallery images.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Producer, error) {
	var producer models.Producer
	if err := r.DB(ctx).
		Preload("GalleryImages", orderedImages).
		Where("id = ?", id).
		First(&producer).Error; err != nil {
		return nil, err
	}
	return &producer, nil
}

// Update writes every column of the producer. Unknown ids return gorm.ErrRecordNotFound.
func (r *Repository) Update(ctx context.Context, producer *models.Producer) error {
	if producer == nil {
		return fmt.Errorf("producer is required")
	}
	producer.UpdatedAt = time.Now().UTC()
	res := r.DB(ctx).
		Model(producer).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(producer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the producer and its gallery images in one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("producer_id = ?", id).Delete(&models.ProducerImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Producer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns one page of producers matching filters plus the total match count.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Producer, int64, error) {
	var count int64
	if err := r.DB(ctx).
		Model(&models.Producer{}).
		Scopes(filters.scope).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.Producer{}
	if count == 0 || int64(params.Offset()) >= count {
		return rows, count, nil
	}

	if err := r.DB(ctx).
		Model(&models.Producer{}).
		Scopes(filters.scope, repo.Paginate(params)).
		Preload("GalleryImages", orderedImages).
		Order("producers.name ASC").
		Order("producers.id ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

// SetActive flips is_active on every listed producer and returns how many rows matched.
func (r *Repository) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB(ctx).
		Model(&models.Producer{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ReplaceGallery makes images the producer's complete gallery in one transaction.
// Images with an id update the existing row, images without one are created and
// rows missing from the list are deleted.
func (r *Repository) ReplaceGallery(ctx context.Context, producerID uuid.UUID, images []models.ProducerImage) ([]models.ProducerImage, error) {
	var result []models.ProducerImage
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		var current []models.ProducerImage
		if err := tx.Where("producer_id = ?", producerID).Find(&current).Error; err != nil {
			return err
		}
		owned := make(map[uuid.UUID]struct{}, len(current))
		for _, img := range current {
			owned[img.ID] = struct{}{}
		}

		keep := make([]uuid.UUID, 0, len(images))
		for i := range images {
			img := images[i]
			img.ProducerID = producerID

			if img.ID == uuid.Nil {
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
				keep = append(keep, img.ID)
				continue
			}

			if _, ok := owned[img.ID]; !ok {
				return &UnknownImageError{Index: i, ID: img.ID}
			}
			if err := tx.Model(&models.ProducerImage{}).
				Where("id = ? AND producer_id = ?", img.ID, producerID).
				Updates(map[string]any{
					"image":    img.Image,
					"caption":  img.Caption,
					"position": img.Position,
				}).Error; err != nil {
				return err
			}
			keep = append(keep, img.ID)
		}

		stale := tx.Where("producer_id = ?", producerID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.ProducerImage{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Producer{}).
			Where("id = ?", producerID).
			Update("updated_at", time.Now().UTC()).Error; err != nil {
			return err
		}

		return orderedImages(tx.Where("producer_id = ?", producerID)).Find(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
