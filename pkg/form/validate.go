package form

import (
	"fmt"

	"github.com/goliatone/go-promptform/pkg/schema"
)

// checkString applies length and regex constraints to a free-text answer.
func checkString(field *schema.Field, value string) error {
	if bound := field.MinLength; bound != nil && len(value) < *bound {
		return &ValidationError{
			Constraint: ConstraintMinLength,
			Value:      value,
			Detail:     fmt.Sprintf("length must be at least %d", *bound),
		}
	}
	if bound := field.MaxLength; bound != nil && len(value) > *bound {
		return &ValidationError{
			Constraint: ConstraintMaxLength,
			Value:      value,
			Detail:     fmt.Sprintf("length must be at most %d", *bound),
		}
	}
	matched, err := field.MatchString(value)
	if err != nil {
		return fmt.Errorf("form: field %q: %w", field.Name, err)
	}
	if !matched {
		return &ValidationError{
			Constraint: ConstraintRegex,
			Value:      value,
			Detail:     fmt.Sprintf("must match %s", field.Regexp),
		}
	}
	return nil
}

// checkNumber applies inclusive numeric bounds.
func checkNumber(field *schema.Field, value float64, raw string) error {
	if bound := field.Min; bound != nil && value < *bound {
		return &ValidationError{
			Constraint: ConstraintMin,
			Value:      raw,
			Detail:     fmt.Sprintf("must be at least %v", *bound),
		}
	}
	if bound := field.Max; bound != nil && value > *bound {
		return &ValidationError{
			Constraint: ConstraintMax,
			Value:      raw,
			Detail:     fmt.Sprintf("must be at most %v", *bound),
		}
	}
	return nil
}

// checkMembership requires value to be one of the declared items, exact
// and case-sensitive. There is no fallback.
func checkMembership(field *schema.Field, value string) error {
	for _, item := range field.Items {
		if item == value {
			return nil
		}
	}
	return &ValidationError{
		Constraint: ConstraintMembership,
		Value:      value,
		Allowed:    append([]string(nil), field.Items...),
	}
}

// checkCount applies min_items/max_items to a collected count.
func checkCount(field *schema.Field, count int) error {
	if bound := field.MinItems; bound != nil && count < *bound {
		return &ValidationError{
			Constraint: ConstraintMinItems,
			Value:      fmt.Sprint(count),
			Detail:     fmt.Sprintf("need at least %d entries, got %d", *bound, count),
		}
	}
	if bound := field.MaxItems; bound != nil && count > *bound {
		return &ValidationError{
			Constraint: ConstraintMaxItems,
			Value:      fmt.Sprint(count),
			Detail:     fmt.Sprintf("need at most %d entries, got %d", *bound, count),
		}
	}
	return nil
}

// convertList parses raw list entries according to the element type.
func convertList(field *schema.Field, entries []string) (any, error) {
	switch field.ElemType() {
	case schema.FieldTypeInt:
		out := make([]int64, 0, len(entries))
		for _, entry := range entries {
			value, err := ParseInt(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case schema.FieldTypeFloat:
		out := make([]float64, 0, len(entries))
		for _, entry := range entries {
			value, err := ParseFloat(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	default:
		return append([]string(nil), entries...), nil
	}
}
