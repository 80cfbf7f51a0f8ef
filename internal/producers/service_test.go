package producers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
	"github.com/angelmondragon/producers-backend/pkg/storage"
)

type stubRepo struct {
	producers map[uuid.UUID]*models.Producer

	listFilters    ListFilters
	listParams     pagination.Params
	listFn         func() ([]models.Producer, int64, error)
	setActiveIDs   []uuid.UUID
	setActiveState bool
	galleryFn      func(producerID uuid.UUID, images []models.ProducerImage) ([]models.ProducerImage, error)
	updates        int
}

func newStubRepo(producers ...*models.Producer) *stubRepo {
	s := &stubRepo{producers: map[uuid.UUID]*models.Producer{}}
	for _, p := range producers {
		s.producers[p.ID] = p
	}
	return s
}

func (s *stubRepo) Create(ctx context.Context, producer *models.Producer) error {
	producer.ID = uuid.New()
	producer.CreatedAt = time.Now()
	producer.UpdatedAt = producer.CreatedAt
	s.producers[producer.ID] = producer
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Producer, error) {
	p, ok := s.producers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubRepo) Update(ctx context.Context, producer *models.Producer) error {
	if _, ok := s.producers[producer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates++
	s.producers[producer.ID] = producer
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.producers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.producers, id)
	return nil
}

func (s *stubRepo) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Producer, int64, error) {
	s.listFilters = filters
	s.listParams = params
	if s.listFn != nil {
		return s.listFn()
	}
	return nil, 0, nil
}

func (s *stubRepo) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	s.setActiveIDs = ids
	s.setActiveState = active
	return int64(len(ids)), nil
}

func (s *stubRepo) ReplaceGallery(ctx context.Context, producerID uuid.UUID, images []models.ProducerImage) ([]models.ProducerImage, error) {
	if s.galleryFn != nil {
		return s.galleryFn(producerID, images)
	}
	return images, nil
}

func decodeInput(t *testing.T, body string) ProducerInput {
	t.Helper()
	var in ProducerInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return in
}

func validationDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", pkgerrors.As(err).Details())
	}
	return details
}

func testURLs() URLBuilder {
	return URLBuilder{Origin: "http://api.test", Resolver: storage.NewLocal("/media/")}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatalf("expected error without repository")
	}
}

func TestServiceCreateAppliesDefaults(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	dto, err := svc.Create(context.Background(), decodeInput(t, `{
		"name": "  Queijaria Serra ",
		"type": ["Cheese"],
		"phone": "+351212345678",
		"main_image": "producers/main/serra.jpg",
		"street": "Rua das Flores", "number": "12", "city": "Lisboa", "zip_code": "1000-001"
	}`), testURLs())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Queijaria Serra" {
		t.Fatalf("expected trimmed name got %q", dto.Name)
	}
	if !dto.IsActive {
		t.Fatalf("expected new producers to be active")
	}
	if dto.TypeDisplay != "cheese" {
		t.Fatalf("unexpected type display %q", dto.TypeDisplay)
	}
	if dto.Address.Formatted != "12, Rua das Flores, Lisboa, 1000-001" {
		t.Fatalf("unexpected address %q", dto.Address.Formatted)
	}
	if dto.MainImage == nil || *dto.MainImage != "http://api.test/media/producers/main/serra.jpg" {
		t.Fatalf("unexpected main image %v", dto.MainImage)
	}
	if dto.Products == nil || dto.GalleryImages == nil {
		t.Fatalf("expected empty collections instead of nil")
	}
	if len(repo.producers) != 1 {
		t.Fatalf("expected producer to be stored")
	}
}

func TestServiceCreateCollectsEveryFieldError(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), decodeInput(t, `{
		"phone": "12345",
		"email": "not-an-email",
		"website": "example.com",
		"latitude": 91,
		"longitude": "-8.1234567"
	}`), testURLs())

	details := validationDetails(t, err)
	for _, field := range []string{"name", "phone", "email", "website", "latitude", "longitude"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected %s to be reported, got %v", field, details)
		}
	}
	if len(repo.producers) != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestServiceCreateRejectsNullOnRequiredFields(t *testing.T) {
	svc, _ := NewService(newStubRepo())
	_, err := svc.Create(context.Background(), decodeInput(t, `{"name": null, "is_active": null}`), testURLs())
	details := validationDetails(t, err)
	if details["name"] != "may not be null" || details["is_active"] != "may not be null" {
		t.Fatalf("unexpected details %v", details)
	}
}

func existingProducer() *models.Producer {
	p := newProducer()
	p.ID = uuid.New()
	p.Name = "Adega Velha"
	p.City = "Porto"
	p.Email = strPtr("adega@example.pt")
	p.Phone = strPtr("+351222000111")
	p.Products = []string{"Vinho do Porto"}
	return p
}

func TestServicePatchOnlyTouchesSentFields(t *testing.T) {
	p := existingProducer()
	repo := newStubRepo(p)
	svc, _ := NewService(repo)

	dto, err := svc.Patch(context.Background(), p.ID, decodeInput(t, `{"city": "Gaia", "email": null}`), testURLs())
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if dto.Address.City != "Gaia" || dto.Name != "Adega Velha" {
		t.Fatalf("unexpected patch result %+v", dto)
	}
	if dto.Email != nil {
		t.Fatalf("expected email to be cleared")
	}
	if dto.Phone == nil || *dto.Phone != "+351222000111" {
		t.Fatalf("expected phone to be untouched")
	}
	if len(dto.Products) != 1 {
		t.Fatalf("expected products to be untouched")
	}
}

func TestServiceReplaceResetsAbsentFields(t *testing.T) {
	p := existingProducer()
	p.IsActive = false
	repo := newStubRepo(p)
	svc, _ := NewService(repo)

	dto, err := svc.Replace(context.Background(), p.ID, decodeInput(t, `{"name": "Adega Nova", "id": "ignored", "type_display": "x"}`), testURLs())
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if dto.ID != p.ID {
		t.Fatalf("read-only id must not change")
	}
	if dto.Address.City != "" || dto.Email != nil || dto.Phone != nil || len(dto.Products) != 0 {
		t.Fatalf("expected absent fields to reset, got %+v", dto)
	}
	if !dto.IsActive {
		t.Fatalf("expected is_active to reset to its default")
	}
}

func TestServiceUpdateValidationLeavesRecordUntouched(t *testing.T) {
	p := existingProducer()
	repo := newStubRepo(p)
	svc, _ := NewService(repo)

	_, err := svc.Patch(context.Background(), p.ID, decodeInput(t, `{"name": "", "phone": "abc"}`), testURLs())
	details := validationDetails(t, err)
	if details["name"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no write on validation failure")
	}
	if repo.producers[p.ID].Name != "Adega Velha" {
		t.Fatalf("stored record changed")
	}
}

func TestServiceNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())
	ctx := context.Background()
	id := uuid.New()

	if _, err := svc.Get(ctx, id, testURLs()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("get: expected not found, got %v", err)
	}
	if _, err := svc.Patch(ctx, id, ProducerInput{}, testURLs()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("patch: expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, id); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("delete: expected not found, got %v", err)
	}
	if _, err := svc.Gallery(ctx, id, testURLs()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("gallery: expected not found, got %v", err)
	}
}

func TestServiceListNormalizesInput(t *testing.T) {
	repo := newStubRepo()
	repo.listFn = func() ([]models.Producer, int64, error) {
		return []models.Producer{*existingProducer()}, 45, nil
	}
	svc, _ := NewService(repo)

	page, err := svc.List(context.Background(), ListProducersInput{
		Filters:    ListFilters{City: "porto", Query: "adega", State: "Porto"},
		Pagination: pagination.Params{Page: 2, PageSize: 500},
	}, testURLs())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listParams.PageSize != pagination.MaxPageSize {
		t.Fatalf("expected page size clamp, got %d", repo.listParams.PageSize)
	}
	if repo.listFilters.Query != "" || repo.listFilters.State != "" || repo.listFilters.City != "porto" {
		t.Fatalf("unexpected public filters %+v", repo.listFilters)
	}
	if page.Count != 45 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}

	admin, err := svc.AdminList(context.Background(), ListProducersInput{Filters: ListFilters{Query: "adega"}})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if repo.listParams.PageSize != pagination.AdminPageSize || repo.listFilters.Query != "adega" {
		t.Fatalf("unexpected admin query %+v %+v", repo.listParams, repo.listFilters)
	}
	if admin.Results[0].Email != "adega@example.pt" {
		t.Fatalf("unexpected admin row %+v", admin.Results[0])
	}
}

func TestServiceListWrapsStoreErrors(t *testing.T) {
	repo := newStubRepo()
	repo.listFn = func() ([]models.Producer, int64, error) { return nil, 0, errors.New("connection reset") }
	svc, _ := NewService(repo)

	_, err := svc.List(context.Background(), ListProducersInput{}, testURLs())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceSetActive(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)
	a, b := uuid.New(), uuid.New()

	if _, err := svc.SetActive(context.Background(), nil, true); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty selection, got %v", err)
	}

	updated, err := svc.SetActive(context.Background(), []uuid.UUID{a, b, a}, false)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if updated != 2 || len(repo.setActiveIDs) != 2 || repo.setActiveState {
		t.Fatalf("expected deduplicated deactivate of 2, got %d %v", updated, repo.setActiveIDs)
	}
}

func TestServiceReplaceGallery(t *testing.T) {
	p := existingProducer()
	repo := newStubRepo(p)
	svc, _ := NewService(repo)
	ctx := context.Background()
	dup := uuid.New()

	_, err := svc.ReplaceGallery(ctx, p.ID, ReplaceGalleryInput{Images: []GalleryImageInput{
		{ID: &dup, Image: "a.jpg"},
		{ID: &dup, Image: "b.jpg"},
		{Image: ""},
	}}, testURLs())
	details := validationDetails(t, err)
	if details["images[1].id"] == "" || details["images[2].image"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}

	repo.galleryFn = func(uuid.UUID, []models.ProducerImage) ([]models.ProducerImage, error) {
		return nil, &UnknownImageError{Index: 0, ID: dup}
	}
	_, err = svc.ReplaceGallery(ctx, p.ID, ReplaceGalleryInput{Images: []GalleryImageInput{{ID: &dup, Image: "a.jpg"}}}, testURLs())
	details = validationDetails(t, err)
	if details["images[0].id"] != "does not belong to this producer" {
		t.Fatalf("unexpected details %v", details)
	}

	repo.galleryFn = nil
	order := 5
	images, err := svc.ReplaceGallery(ctx, p.ID, ReplaceGalleryInput{Images: []GalleryImageInput{
		{Image: "late.jpg", Order: &order},
		{Image: "first.jpg", Caption: strPtr("  Forno  ")},
	}}, testURLs())
	if err != nil {
		t.Fatalf("replace gallery: %v", err)
	}
	if len(images) != 2 || images[0].Image != "first.jpg" || images[1].Order != 5 {
		t.Fatalf("unexpected gallery %+v", images)
	}
	if images[0].Caption == nil || *images[0].Caption != "Forno" {
		t.Fatalf("expected trimmed caption")
	}
	if images[0].ImageURL == nil || *images[0].ImageURL != "http://api.test/media/first.jpg" {
		t.Fatalf("unexpected image url %v", images[0].ImageURL)
	}

	if _, err := svc.ReplaceGallery(ctx, uuid.New(), ReplaceGalleryInput{}, testURLs()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown producer, got %v", err)
	}
}
