package schema

import "strings"

// Subset returns a copy of the tree pruned to the given dotted paths. A
// requested path keeps its field, every ancestor leading to it, and the
// whole subtree below it. Selects whose conditional branches still
// contain kept fields stay too, so the reveal that produces those fields
// keeps working. No paths means a full copy.
//
// Together with render.MapErrorPayload this supports re-running just the
// fields a server rejected.
func Subset(fields *Fields, paths ...string) *Fields {
	m := newSubsetMatcher(paths)
	if m.empty() {
		return cloneFields(fields)
	}
	return pruneFields(fields, "", m)
}

type subsetMatcher struct {
	paths []string
}

func newSubsetMatcher(paths []string) subsetMatcher {
	cleaned := make([]string, 0, len(paths))
	for _, path := range paths {
		if trimmed := strings.Trim(strings.TrimSpace(path), "."); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return subsetMatcher{paths: cleaned}
}

func (m subsetMatcher) empty() bool {
	return len(m.paths) == 0
}

// covers reports whether path equals a requested path or sits below one;
// such fields are kept whole.
func (m subsetMatcher) covers(path string) bool {
	for _, requested := range m.paths {
		if path == requested || strings.HasPrefix(path, requested+".") {
			return true
		}
	}
	return false
}

// leadsTo reports whether path is a strict ancestor of a requested path.
func (m subsetMatcher) leadsTo(path string) bool {
	for _, requested := range m.paths {
		if strings.HasPrefix(requested, path+".") {
			return true
		}
	}
	return false
}

func pruneFields(fields *Fields, prefix string, m subsetMatcher) *Fields {
	out := &Fields{}
	if fields == nil {
		return out
	}

	fields.Visit(func(name string, field *Field) bool {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		switch {
		case m.covers(path):
			out.Set(name, cloneField(field))
		case m.leadsTo(path):
			pruned := cloneFieldShallow(field)
			if field.Fields != nil {
				pruned.Fields = pruneFields(field.Fields, path, m)
			}
			pruned.Then = pruneConditional(field, prefix, path, m)
			if (pruned.Fields == nil || pruned.Fields.Len() == 0) && pruned.Then == nil {
				return true
			}
			out.Set(name, pruned)
		default:
			// A select is still needed when one of its branches reveals
			// a kept field.
			if then := pruneConditional(field, prefix, path, m); then != nil {
				pruned := cloneFieldShallow(field)
				pruned.Then = then
				out.Set(name, pruned)
			}
		}
		return true
	})
	return out
}

func pruneConditional(field *Field, prefix, path string, m subsetMatcher) *Conditional {
	if field.Then == nil {
		return nil
	}

	branchPrefix := path
	if field.Then.InsertAtRoot {
		branchPrefix = prefix
	}

	var kept []Branch
	for i := range field.Then.If {
		branch := field.Then.If[i]
		sub := pruneFields(branch.Fields, branchPrefix, m)
		if sub.Len() == 0 {
			continue
		}
		kept = append(kept, Branch{Picked: branch.Picked, Fields: sub})
	}
	if len(kept) == 0 {
		return nil
	}
	return &Conditional{InsertAtRoot: field.Then.InsertAtRoot, If: kept}
}

func cloneFields(fields *Fields) *Fields {
	out := &Fields{}
	if fields == nil {
		return out
	}
	fields.Visit(func(name string, field *Field) bool {
		out.Set(name, cloneField(field))
		return true
	})
	return out
}

func cloneField(field *Field) *Field {
	clone := cloneFieldShallow(field)
	if field.Fields != nil {
		clone.Fields = cloneFields(field.Fields)
	}
	if field.Then != nil {
		branches := make([]Branch, 0, len(field.Then.If))
		for i := range field.Then.If {
			branches = append(branches, Branch{
				Picked: field.Then.If[i].Picked,
				Fields: cloneFields(field.Then.If[i].Fields),
			})
		}
		clone.Then = &Conditional{InsertAtRoot: field.Then.InsertAtRoot, If: branches}
	}
	return clone
}

// cloneFieldShallow copies the field without children or conditionals.
// Constraint pointers are shared; they are never mutated after load.
func cloneFieldShallow(field *Field) *Field {
	clone := *field
	clone.Fields = nil
	clone.Then = nil
	clone.Items = append([]string(nil), field.Items...)
	return &clone
}
