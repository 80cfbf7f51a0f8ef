package producers

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/producers-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for producer listings.
// Empty values and a nil IsActive mean "no filter".
type ListFilters struct {
	Type     string `json:"type,omitempty"`
	City     string `json:"city,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`

	// Administrative listing only. CreatedAfter is inclusive, CreatedBefore exclusive.
	Query         string     `json:"q,omitempty"`
	State         string     `json:"state,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// ListProducersInput captures the inputs needed to filter and paginate producers.
type ListProducersInput struct {
	Filters    ListFilters
	Pagination pagination.Params
	// BaseURL is the absolute request URL; page links keep its query string.
	BaseURL *url.URL
}

// ProducerPage is one page of public producer representations.
type ProducerPage = pagination.Page[ProducerDTO]

// AdminProducerPage is one page of administrative rows.
type AdminProducerPage = pagination.Page[AdminProducerRow]

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching value anywhere.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// scope applies the filters as AND-combined predicates.
func (f ListFilters) scope(db *gorm.DB) *gorm.DB {
	if t := strings.TrimSpace(f.Type); t != "" {
		db = db.Where(`LOWER(CAST(producers.type AS TEXT)) LIKE ? ESCAPE '\'`, containsPattern(t))
	}
	if c := strings.TrimSpace(f.City); c != "" {
		db = db.Where(`LOWER(producers.city) LIKE ? ESCAPE '\'`, containsPattern(c))
	}
	if f.IsActive != nil {
		db = db.Where("producers.is_active = ?", *f.IsActive)
	}
	if s := strings.TrimSpace(f.State); s != "" {
		db = db.Where("LOWER(producers.state) = ?", strings.ToLower(s))
	}
	if f.CreatedAfter != nil {
		db = db.Where("producers.created_at >= ?", f.CreatedAfter.UTC())
	}
	if f.CreatedBefore != nil {
		db = db.Where("producers.created_at < ?", f.CreatedBefore.UTC())
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := containsPattern(q)
		db = db.Where(
			`(LOWER(producers.name) LIKE @q ESCAPE '\' OR LOWER(producers.description) LIKE @q ESCAPE '\' OR `+
				`LOWER(COALESCE(producers.email, '')) LIKE @q ESCAPE '\' OR LOWER(COALESCE(producers.phone, '')) LIKE @q ESCAPE '\' OR `+
				`LOWER(producers.city) LIKE @q ESCAPE '\')`,
			map[string]any{"q": pattern},
		)
	}
	return db
}
