package content

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError reports a content entry whose front matter does not match
// its collection's schema, or whose id is empty or already taken.
type ValidationError struct {
	Collection string
	Entry      string
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s/%s: invalid entry: %v", e.Collection, e.Entry, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Fields lists the offending field names, when the schema check got that far.
func (e *ValidationError) Fields() []string {
	var errs validation.Errors
	if !errors.As(e.Err, &errs) {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
