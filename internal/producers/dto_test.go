package producers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/producers-backend/pkg/db/models"
	"github.com/angelmondragon/producers-backend/pkg/types"
)

func TestFromModelShape(t *testing.T) {
	now := time.Now()
	p := &models.Producer{
		ID:        uuid.New(),
		Name:      "Mel da Serra",
		Type:      types.NewTagList("honey", "bees"),
		City:      "Lisboa",
		Street:    strPtr("Rua das Flores"),
		Number:    strPtr("12"),
		ZipCode:   strPtr("1000-001"),
		Latitude:  decimal.NewNullDecimal(decimal.RequireFromString("38.722252")),
		MainImage: strPtr("https://cdn.example.pt/mel.jpg"),
		IsActive:  true,
		GalleryImages: []models.ProducerImage{
			{ID: uuid.New(), Image: "b.jpg", Position: 2, UploadedAt: now},
			{ID: uuid.New(), Image: "a.jpg", Position: 0, UploadedAt: now},
		},
	}

	dto := FromModel(p, URLBuilder{Origin: "https://api.example.pt"})
	if dto.TypeDisplay != "honey • bees" {
		t.Fatalf("unexpected type display %q", dto.TypeDisplay)
	}
	if dto.Address.Formatted != "12, Rua das Flores, Lisboa, 1000-001" {
		t.Fatalf("unexpected address %q", dto.Address.Formatted)
	}
	if *dto.MainImage != "https://cdn.example.pt/mel.jpg" {
		t.Fatalf("absolute urls must pass through, got %s", *dto.MainImage)
	}
	if len(dto.GalleryImages) != 2 || dto.GalleryImages[0].Order != 0 {
		t.Fatalf("expected gallery sorted by order, got %+v", dto.GalleryImages)
	}
	if *dto.GalleryImages[0].ImageURL != "https://api.example.pt/a.jpg" {
		t.Fatalf("unexpected gallery url %s", *dto.GalleryImages[0].ImageURL)
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, fragment := range []string{
		`"latitude":"38.722252"`,
		`"longitude":null`,
		`"products":[]`,
		`"phone":null`,
		`"type":["honey","bees"]`,
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %s in %s", fragment, body)
		}
	}
}

func TestFromModelWithoutAddressOrImages(t *testing.T) {
	dto := FromModel(&models.Producer{Name: "Sem Morada"}, URLBuilder{})
	if dto.Address.Formatted != types.NoAddressMarker {
		t.Fatalf("expected no-address marker, got %q", dto.Address.Formatted)
	}
	if dto.MainImage != nil {
		t.Fatalf("expected null main image")
	}
	if dto.Type == nil || dto.GalleryImages == nil {
		t.Fatalf("expected empty collections")
	}
	if FromModel(nil, URLBuilder{}) != nil {
		t.Fatalf("nil model maps to nil")
	}
}

func TestAdminRowFallbacks(t *testing.T) {
	row := AdminRowFromModel(&models.Producer{Name: "Anónimo", MobilePhone: strPtr("+351912345678")})
	if row.TypeDisplay != "-" || row.City != "-" || row.Email != "-" {
		t.Fatalf("expected placeholders, got %+v", row)
	}
	if row.Phone != "+351912345678" {
		t.Fatalf("expected mobile phone fallback, got %q", row.Phone)
	}

	row = AdminRowFromModel(&models.Producer{
		Name:        "Completo",
		Type:        types.NewTagList("wine"),
		City:        "Porto",
		Phone:       strPtr("+351222000111"),
		MobilePhone: strPtr("+351912345678"),
	})
	if row.Phone != "+351222000111" || row.TypeDisplay != "wine" || row.City != "Porto" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestAdminGalleryKeepsStoredReference(t *testing.T) {
	uploaded := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	images := AdminGalleryFromModels([]models.ProducerImage{
		{ID: uuid.New(), Image: "gallery/x.jpg", Position: 0, UploadedAt: uploaded},
	}, URLBuilder{Origin: "http://localhost:8000"})
	if len(images) != 1 {
		t.Fatalf("expected one image")
	}
	if images[0].Image != "gallery/x.jpg" || !images[0].UploadedAt.Equal(uploaded) {
		t.Fatalf("unexpected admin image %+v", images[0])
	}
	if *images[0].ImageURL != "http://localhost:8000/gallery/x.jpg" {
		t.Fatalf("unexpected url %s", *images[0].ImageURL)
	}
}
