package document

// Section content normalization. Each section type has a shape contract:
// singleton types carry exactly one record with every field present,
// repeatable types carry zero or more records. Editors and renderers read
// named fields without nil checks because normalization has already run.
//
// Normalization is total and idempotent: any input, however malformed, maps
// to a valid shape, and running it twice changes nothing further.

// singletonDefaults maps each singleton section type to the full default
// record for that type. A missing or wrongly-typed field in stored content
// is backfilled from here.
var singletonDefaults = map[SectionType]func() Record{
	TypePersonal: func() Record {
		return Record{
			"fullName":    "",
			"jobTitle":    "",
			"email":       "",
			"phone":       "",
			"location":    "",
			"website":     "",
			"socialLinks": map[string]any{},
		}
	},
	TypeSummary: func() Record {
		return Record{
			"text": "",
		}
	},
	TypeSkills: func() Record {
		return Record{
			"technical": []any{},
			"soft":      []any{},
			"languages": []any{},
		}
	},
}

// IsSingleton reports whether the type uses the array-of-one convention.
func IsSingleton(t SectionType) bool {
	_, ok := singletonDefaults[t]
	return ok
}

// Normalize returns the section with type-correct content, plus whether
// anything had to change. The input is not modified. Callers that hold
// persisted state should write a changed result back through the document
// store so the healing sticks.
func Normalize(s Section) (Section, bool) {
	build, singleton := singletonDefaults[s.Type]
	if !singleton {
		// Repeatable (and custom/unknown) types: the only healing needed
		// is replacing an absent sequence with an empty one. Records that
		// are present pass through unchanged.
		if s.Content == nil {
			out := s
			out.Content = []Record{}
			return out, true
		}
		return s, false
	}

	defaults := build()
	if len(s.Content) == 0 {
		out := s
		out.Content = []Record{defaults}
		return out, true
	}

	merged, changed := mergeDefaults(s.Content[0], defaults)
	if !changed && len(s.Content) == 1 {
		return s, false
	}
	out := s
	out.Content = []Record{merged}
	return out, true
}

// mergeDefaults backfills missing fields of rec from defaults and replaces
// values whose kind does not match the default's kind. Extra fields the
// caller set are kept.
func mergeDefaults(rec Record, defaults Record) (Record, bool) {
	out := cloneMap(rec)
	changed := false
	for field, def := range defaults {
		cur, ok := out[field]
		if !ok || cur == nil || !sameKind(cur, def) {
			out[field] = cloneValue(def)
			changed = true
		}
	}
	return out, changed
}

// sameKind compares the JSON kind of two values: both maps, both sequences,
// both strings, both booleans, or both numbers.
func sameKind(a, b any) bool {
	switch b.(type) {
	case map[string]any:
		_, ok := a.(map[string]any)
		return ok
	case []any:
		switch a.(type) {
		case []any, []string:
			return true
		}
		return false
	case string:
		_, ok := a.(string)
		return ok
	case bool:
		_, ok := a.(bool)
		return ok
	case float64, int:
		switch a.(type) {
		case float64, int:
			return true
		}
		return false
	default:
		return true
	}
}
