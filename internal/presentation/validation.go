package presentation

import (
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/apperr"
)

// Field names a form input.
type Field string

const (
	FieldTitle Field = "title"
	FieldQuote Field = "quote"
	FieldPage  Field = "page"
	FieldBook  Field = "book"
)

// Validation errors shown next to form inputs.
var (
	ErrTitleRequired = apperr.Validation("title required")
	ErrQuoteRequired = apperr.Validation("quote text required")
	ErrPageRequired  = apperr.Validation("page required")
	ErrPageTooLarge  = apperr.Validation("page number too large")
	ErrBookRequired  = apperr.Validation("book selection required")
)

var validate = validator.New()

// Touched records which fields the user has interacted with.
type Touched map[Field]bool

// With returns a copy of t that also contains fields.
func (t Touched) With(fields ...Field) Touched {
	out := make(Touched, len(t)+len(fields))
	for f, v := range t {
		out[f] = v
	}
	for _, f := range fields {
		out[f] = true
	}
	return out
}

// rule checks one field; only touched fields are checked. The first failing
// rule of a field wins.
type rule struct {
	field Field
	value any
	tag   string
	err   error
}

func check(touched Touched, rules ...rule) map[Field]error {
	errs := make(map[Field]error)
	for _, r := range rules {
		if _, failed := errs[r.field]; failed || !touched[r.field] {
			continue
		}
		if validate.Var(r.value, r.tag) != nil {
			errs[r.field] = r.err
		}
	}
	return errs
}
