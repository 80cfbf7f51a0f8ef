package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// FieldErrors maps a JSON field name to its validation message.
type FieldErrors map[string]string

// Add records msg for field unless one is already present.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; ok {
		return
	}
	f[field] = msg
}

// Merge copies every entry of other that is not already recorded.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		f.Add(field, msg)
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
