package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// TagSeparator joins tags for display.
const TagSeparator = " • "

// TagList is a lowercase list of category tags persisted as a JSON array.
// Legacy rows holding a bare JSON string or raw text scan as a one-element list.
type TagList []string

// NewTagList trims and lowercases every tag, dropping empty entries.
func NewTagList(values ...string) TagList {
	out := make(TagList, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Display joins the tags with a bullet separator.
func (t TagList) Display() string {
	return strings.Join(t, TagSeparator)
}

// Value stores the list as a JSON array, never null. Characters such as & and <
// are kept literal so text filters over the stored column can match them.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(t)); err != nil {
		return nil, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Scan reads JSON arrays, legacy JSON strings and raw text.
func (t *TagList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("tag list: unsupported scan type %T", value)
	}

	parsed, err := parseTags(raw)
	if err != nil {
		// raw text predating the JSON column
		*t = NewTagList(string(raw))
		return nil
	}
	*t = parsed
	return nil
}

// UnmarshalJSON accepts either a list of strings or a single legacy string.
func (t *TagList) UnmarshalJSON(data []byte) error {
	parsed, err := parseTags(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON always emits an array.
func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

func (TagList) GormDataType() string {
	return "json"
}

func (TagList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}

func parseTags(data []byte) (TagList, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return TagList{}, nil
	}

	switch trimmed[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("tag list: %w", err)
		}
		return NewTagList(list...), nil
	case '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("tag list: %w", err)
		}
		return NewTagList(single), nil
	default:
		return nil, fmt.Errorf("tag list: expected string or array")
	}
}
