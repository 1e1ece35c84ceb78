package schema

// Field describes one canonical output column: the raw names that may carry
// its value across filing-spec versions and an optional value formatter.
// Fields are value types and never mutated after construction.
type Field struct {
	Aliases []string
	Format  func(string) string
}

// Apply runs the field's formatter, or returns the value unchanged.
func (f Field) Apply(value string) string {
	if f.Format != nil {
		return f.Format(value)
	}
	return value
}

// resolver pulls one canonical field out of a raw column map. The ok result
// is false when the source column is absent from that particular row.
type resolver struct {
	canonical string
	raw       string
	format    func(string) string
}

func (r resolver) resolve(data map[string]string) (string, bool) {
	v, ok := data[r.raw]
	if !ok {
		return "", false
	}
	if r.format != nil {
		return r.format(v), true
	}
	return v, true
}

// resolvers returns one entry per raw name this field accepts. The canonical
// name itself is always accepted, whether or not it is listed as an alias.
func (f Field) resolvers(canonical string) map[string]resolver {
	out := make(map[string]resolver, len(f.Aliases)+1)
	out[canonical] = resolver{canonical: canonical, raw: canonical, format: f.Format}
	for _, alias := range f.Aliases {
		out[alias] = resolver{canonical: canonical, raw: alias, format: f.Format}
	}
	return out
}
