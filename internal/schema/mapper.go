package schema

import (
	"sort"

	"fecdec/internal"
)

// Mapper is the alias index: one lookup from any accepted raw column name to
// the canonical field it feeds. It is built once from the full field table
// and read-only afterwards, so a single Mapper is shared safely by any
// number of concurrent decoders.
type Mapper struct {
	resolvers map[string]resolver
}

// NewMapper inverts the field table. If two fields claim the same alias the
// last one written wins; that is the conflict policy, and a well-formed
// table never trips it.
func NewMapper(fields map[string]Field) *Mapper {
	m := &Mapper{resolvers: make(map[string]resolver)}
	for canonical, field := range fields {
		for raw, res := range field.resolvers(canonical) {
			m.resolvers[raw] = res
		}
	}
	return m
}

// Resolve reports which canonical field a raw column name feeds.
func (m *Mapper) Resolve(raw string) (string, bool) {
	res, ok := m.resolvers[raw]
	return res.canonical, ok
}

// Canonicals returns the canonical field names in sorted order.
func (m *Mapper) Canonicals() []string {
	seen := make(map[string]struct{})
	for _, res := range m.resolvers {
		seen[res.canonical] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Map zips the resolved column names positionally against one row's values
// and maps the recognized columns onto the canonical schema. The shorter of
// the two slices bounds the zip; lining the counts up is the caller's job,
// trailing cells on either side are dropped. Columns are visited in row
// order, so when several raw columns feed the same canonical field the
// rightmost one wins. Unrecognized columns cost a single map probe and land
// only in OriginalData; a resolver that cannot find its source column skips
// that one field and the record is still produced.
func (m *Mapper) Map(names, values []string) internal.Record {
	n := len(names)
	if len(values) < n {
		n = len(values)
	}
	data := make(map[string]string, n)
	for i := 0; i < n; i++ {
		data[names[i]] = values[i]
	}

	rec := internal.Record{
		Fields:       make(map[string]string),
		OriginalData: data,
	}
	for i := 0; i < n; i++ {
		res, ok := m.resolvers[names[i]]
		if !ok {
			continue
		}
		value, ok := res.resolve(data)
		if !ok {
			continue
		}
		rec.Fields[res.canonical] = value
	}
	return rec
}
