package producers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
	"github.com/angelmondragon/producers-backend/pkg/types"
	"github.com/angelmondragon/producers-backend/pkg/validation"
)

type producerRepository interface {
	Create(ctx context.Context, producer *models.Producer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Producer, error)
	Update(ctx context.Context, producer *models.Producer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Producer, int64, error)
	SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error)
	ReplaceGallery(ctx context.Context, producerID uuid.UUID, images []models.ProducerImage) ([]models.ProducerImage, error)
}

// Service exposes producer catalog operations.
type Service interface {
	List(ctx context.Context, input ListProducersInput, urls URLBuilder) (*ProducerPage, error)
	AdminList(ctx context.Context, input ListProducersInput) (*AdminProducerPage, error)
	Get(ctx context.Context, id uuid.UUID, urls URLBuilder) (*ProducerDTO, error)
	Create(ctx context.Context, input ProducerInput, urls URLBuilder) (*ProducerDTO, error)
	Replace(ctx context.Context, id uuid.UUID, input ProducerInput, urls URLBuilder) (*ProducerDTO, error)
	Patch(ctx context.Context, id uuid.UUID, input ProducerInput, urls URLBuilder) (*ProducerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error)
	Gallery(ctx context.Context, id uuid.UUID, urls URLBuilder) ([]AdminGalleryImageDTO, error)
	ReplaceGallery(ctx context.Context, id uuid.UUID, input ReplaceGalleryInput, urls URLBuilder) ([]AdminGalleryImageDTO, error)
}

type service struct {
	repo     producerRepository
	validate *validator.Validate
}

// NewService builds a producer service with the provided repository.
func NewService(repo producerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("producer repository required")
	}
	return &service{
		repo:     repo,
		validate: validation.New(),
	}, nil
}

func (s *service) List(ctx context.Context, input ListProducersInput, urls URLBuilder) (*ProducerPage, error) {
	params := input.Pagination.Normalize(pagination.DefaultPageSize)
	// public listings do not search or filter by state or creation date
	filters := input.Filters
	filters.Query, filters.State = "", ""
	filters.CreatedAfter, filters.CreatedBefore = nil, nil

	rows, count, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "list producers")
	}

	results := make([]ProducerDTO, 0, len(rows))
	for i := range rows {
		results = append(results, *FromModel(&rows[i], urls))
	}
	page := pagination.NewPage(results, count, params, input.BaseURL)
	return &page, nil
}

func (s *service) AdminList(ctx context.Context, input ListProducersInput) (*AdminProducerPage, error) {
	params := input.Pagination.Normalize(pagination.AdminPageSize)

	rows, count, err := s.repo.List(ctx, input.Filters, params)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "list producers")
	}

	results := make([]AdminProducerRow, 0, len(rows))
	for i := range rows {
		results = append(results, AdminRowFromModel(&rows[i]))
	}
	page := pagination.NewPage(results, count, params, input.BaseURL)
	return &page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, urls URLBuilder) (*ProducerDTO, error) {
	producer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(producer, urls), nil
}

func (s *service) Create(ctx context.Context, input ProducerInput, urls URLBuilder) (*ProducerDTO, error) {
	producer := newProducer()
	if err := s.merge(producer, input, true); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, producer); err != nil {
		return nil, pkgerrors.FromStore(err, "create producer")
	}
	return FromModel(producer, urls), nil
}

func (s *service) Replace(ctx context.Context, id uuid.UUID, input ProducerInput, urls URLBuilder) (*ProducerDTO, error) {
	return s.update(ctx, id, input, true, urls)
}

func (s *service) Patch(ctx context.Context, id uuid.UUID, input ProducerInput, urls URLBuilder) (*ProducerDTO, error) {
	return s.update(ctx, id, input, false, urls)
}

func (s *service) update(ctx context.Context, id uuid.UUID, input ProducerInput, full bool, urls URLBuilder) (*ProducerDTO, error) {
	producer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.merge(producer, input, full); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, producer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producer not found")
		}
		return nil, pkgerrors.FromStore(err, "update producer")
	}
	return FromModel(producer, urls), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "producer not found")
		}
		return pkgerrors.FromStore(err, "delete producer")
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, pkgerrors.Validation(map[string]string{"ids": "must select at least one producer"})
	}
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	updated, err := s.repo.SetActive(ctx, unique, active)
	if err != nil {
		return 0, pkgerrors.FromStore(err, "update producer status")
	}
	return updated, nil
}

func (s *service) Gallery(ctx context.Context, id uuid.UUID, urls URLBuilder) ([]AdminGalleryImageDTO, error) {
	producer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return AdminGalleryFromModels(producer.GalleryImages, urls), nil
}

func (s *service) ReplaceGallery(ctx context.Context, id uuid.UUID, input ReplaceGalleryInput, urls URLBuilder) ([]AdminGalleryImageDTO, error) {
	errs := types.FieldErrors{}
	validateGallery(s.validate, input, errs)
	if !errs.Empty() {
		return nil, pkgerrors.Validation(errs)
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	images, err := s.repo.ReplaceGallery(ctx, id, input.toModels())
	if err != nil {
		var unknown *UnknownImageError
		if errors.As(err, &unknown) {
			return nil, pkgerrors.Validation(map[string]string{
				fmt.Sprintf("images[%d].id", unknown.Index): "does not belong to this producer",
			})
		}
		return nil, pkgerrors.FromStore(err, "replace producer gallery")
	}
	return AdminGalleryFromModels(images, urls), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Producer, error) {
	producer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producer not found")
		}
		return nil, pkgerrors.FromStore(err, "load producer")
	}
	return producer, nil
}

// merge applies input onto producer and validates the result; nothing is
// written when any field fails.
func (s *service) merge(producer *models.Producer, input ProducerInput, full bool) error {
	errs := types.FieldErrors{}
	input.applyTo(producer, full, errs)
	validateProducer(s.validate, producer, errs)
	if !errs.Empty() {
		return pkgerrors.Validation(errs)
	}
	return nil
}
