package document

// Clone returns a deep copy of the document. History snapshots rely on this:
// a later mutation of the current document must never reach a stored
// snapshot, so every nested slice and map is copied, not shared.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Sections = make([]Section, len(d.Sections))
	for i := range d.Sections {
		out.Sections[i] = d.Sections[i].Clone()
	}
	return &out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Content != nil {
		out.Content = make([]Record, len(s.Content))
		for i, rec := range s.Content {
			out.Content[i] = cloneMap(rec)
		}
	}
	if s.Settings != nil {
		out.Settings = cloneMap(s.Settings)
	}
	return out
}

// CloneContent returns a deep copy of a content sequence. A nil input stays
// nil so absence survives the copy.
func CloneContent(content []Record) []Record {
	if content == nil {
		return nil
	}
	out := make([]Record, len(content))
	for i, rec := range content {
		out[i] = cloneMap(rec)
	}
	return out
}

// cloneValue copies a JSON-compatible value. Scalars are returned as-is;
// maps and slices are copied recursively.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
