package schema

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Validate walks the field tree once and reports every defect it finds,
// aggregated so authors can fix a document in one pass. A non-nil result
// is a *SchemaError and the tree must not be interpreted.
func Validate(fields *Fields) error {
	if fields == nil || fields.Len() == 0 {
		return &SchemaError{Err: ErrNoFields}
	}
	v := &validator{active: make(map[*Fields]bool)}
	v.walkFields("", fields)
	if v.err != nil {
		return &SchemaError{Err: v.err}
	}
	return nil
}

type validator struct {
	err error
	// active tracks mappings on the current walk path so aliased trees
	// cannot loop the validator or, later, the interpreter.
	active map[*Fields]bool
}

func (v *validator) defect(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	v.err = multierr.Append(v.err, errors.New(msg))
}

func (v *validator) walkFields(path string, fields *Fields) {
	if fields == nil {
		return
	}
	if v.active[fields] {
		v.defect(path, "cycle detected")
		return
	}
	v.active[fields] = true
	defer delete(v.active, fields)

	fields.Visit(func(name string, field *Field) bool {
		v.walkField(joinPath(path, name), field)
		return true
	})
}

func (v *validator) walkField(path string, f *Field) {
	if f == nil {
		v.defect(path, "field is nil")
		return
	}
	if strings.TrimSpace(f.Name) == "" {
		v.defect(path, "field name is empty")
	}
	if !f.Type.valid() {
		v.defect(path, "unknown type %q", f.Type)
		return
	}

	v.checkConstraintPlacement(path, f)

	switch f.Type {
	case FieldTypeString:
		if f.Regexp != "" {
			if err := f.compile(); err != nil {
				v.defect(path, "regex %q does not compile: %v", f.Regexp, err)
			}
		}
	case FieldTypeSelect, FieldTypeMultiSelect:
		if len(f.Items) == 0 {
			v.defect(path, "%s has no items", f.Type)
		}
	case FieldTypeObject:
		if f.Fields == nil || f.Fields.Len() == 0 {
			v.defect(path, "object has no fields")
		}
		v.walkFields(path, f.Fields)
	case FieldTypeList:
		switch f.ElemType() {
		case FieldTypeString, FieldTypeInt, FieldTypeFloat:
		default:
			v.defect(path, "list element type %q is not supported", f.Elem)
		}
	}

	v.checkBounds(path, f)
	v.checkConditional(path, f)
}

// checkConstraintPlacement flags constraints authored on field types they
// cannot apply to.
func (v *validator) checkConstraintPlacement(path string, f *Field) {
	if !f.StringConstraints.empty() && f.Type != FieldTypeString {
		v.defect(path, "string constraints do not apply to type %q", f.Type)
	}
	if !f.NumberConstraints.empty() && f.Type != FieldTypeInt && f.Type != FieldTypeFloat {
		v.defect(path, "numeric bounds do not apply to type %q", f.Type)
	}
	if !f.CollectionConstraints.empty() && f.Type != FieldTypeList && f.Type != FieldTypeMultiSelect {
		v.defect(path, "item bounds do not apply to type %q", f.Type)
	}
	if len(f.Items) > 0 && f.Type != FieldTypeSelect && f.Type != FieldTypeMultiSelect {
		v.defect(path, "items do not apply to type %q", f.Type)
	}
	if f.Fields != nil && f.Type != FieldTypeObject {
		v.defect(path, "nested fields do not apply to type %q", f.Type)
	}
	if f.Elem != "" && f.Type != FieldTypeList {
		v.defect(path, "elem does not apply to type %q", f.Type)
	}
}

func (v *validator) checkBounds(path string, f *Field) {
	if f.MinLength != nil && *f.MinLength < 0 {
		v.defect(path, "min_length is negative")
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		v.defect(path, "min_length %d exceeds max_length %d", *f.MinLength, *f.MaxLength)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		v.defect(path, "min %v exceeds max %v", *f.Min, *f.Max)
	}
	if f.MinItems != nil && *f.MinItems < 0 {
		v.defect(path, "min_items is negative")
	}
	if f.MinItems != nil && f.MaxItems != nil && *f.MinItems > *f.MaxItems {
		v.defect(path, "min_items %d exceeds max_items %d", *f.MinItems, *f.MaxItems)
	}
}

func (v *validator) checkConditional(path string, f *Field) {
	if f.Then == nil {
		return
	}
	if f.Type != FieldTypeSelect {
		v.defect(path, "conditional requires a select field, not %q", f.Type)
		return
	}
	if len(f.Then.If) == 0 {
		v.defect(path, "conditional has no branches")
		return
	}

	allowed := make(map[string]bool, len(f.Items))
	for _, item := range f.Items {
		allowed[item] = true
	}

	seen := make(map[string]bool, len(f.Then.If))
	for i := range f.Then.If {
		branch := &f.Then.If[i]
		branchPath := fmt.Sprintf("%s.then[%s]", path, branch.Picked)
		if !allowed[branch.Picked] {
			v.defect(path, "branch picked %q is not one of the items", branch.Picked)
		}
		if seen[branch.Picked] {
			v.defect(path, "duplicate branch for picked %q", branch.Picked)
		}
		seen[branch.Picked] = true
		if branch.Fields == nil || branch.Fields.Len() == 0 {
			v.defect(branchPath, "branch reveals no fields")
			continue
		}
		v.walkFields(branchPath, branch.Fields)
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
