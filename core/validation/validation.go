package validation

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) HasError() bool {
	return len(r.Errors) > 0
}

// Has reports whether field has at least one error.
func (r *Result) Has(field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}
