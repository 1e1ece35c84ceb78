package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fecdec/internal"
	"fecdec/internal/schema"
)

// ErrSchemaNotFound marks a record-type code with no header definition even
// after suffix shortening. The header table is presumed complete, so a miss
// means the file is corrupt or from an unsupported future format version;
// the whole stream is abandoned, never a partial record.
var ErrSchemaNotFound = errors.New("schema not found")

const (
	beginTextMarker = "[begintext]"
	endTextMarker   = "[endtext]"
)

// Decoder reads one comma-delimited filing and yields normalized records one
// at a time, in the bufio.Scanner idiom: call Next until it returns false,
// then check Err.
type Decoder struct {
	src      *csv.Reader
	name     string
	registry *schema.Registry
	mapper   *schema.Mapper

	headers schema.VersionSchema
	started bool
	inText  bool

	rec internal.Record
	err error
}

// NewDecoder wraps one delimited stream. name labels records and errors with
// their source, usually the file or archive member name.
func NewDecoder(r io.Reader, name string, registry *schema.Registry, mapper *schema.Mapper) *Decoder {
	src := csv.NewReader(r)
	src.FieldsPerRecord = -1
	src.LazyQuotes = true // filer software emits unescaped quotes
	return &Decoder{src: src, name: name, registry: registry, mapper: mapper}
}

// Next advances to the next record. It returns false at end of stream or on
// the first error; Err tells the two apart.
func (d *Decoder) Next() bool {
	if d.err != nil {
		return false
	}
	if !d.started && !d.start() {
		return false
	}
	for {
		row, err := d.src.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			d.err = fmt.Errorf("%s: %w", d.name, err)
			return false
		}
		line, _ := d.src.FieldPos(0)
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue // stray blank rows from some filer software
		}

		marker := strings.ToLower(row[0])
		if d.inText {
			if marker == endTextMarker {
				d.inText = false
			}
			continue
		}
		if marker == beginTextMarker {
			// Unstructured F99 text follows. The marker row carries no field
			// data, so it is not dispatched as a record.
			d.inText = true
			continue
		}

		names, ok := schema.FindKey(d.headers, row[0])
		if !ok {
			d.err = fmt.Errorf("%s line %d: %w: no header definition for record type %q",
				d.name, line, ErrSchemaNotFound, row[0])
			return false
		}

		rec := d.mapper.Map(names, row)
		rec.SourceFile = d.name
		rec.LineNo = line
		rec.FormType = row[0]
		d.rec = rec
		return true
	}
}

// start consumes the header row and resolves the format version it carries
// at column index 2.
func (d *Decoder) start() bool {
	d.started = true
	row, err := d.src.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		d.err = fmt.Errorf("%s: %w", d.name, err)
		return false
	}
	if len(row) < 3 {
		d.err = fmt.Errorf("%s: header row too short to carry a format version", d.name)
		return false
	}
	headers, err := d.registry.HeadersFor(row[2])
	if err != nil {
		d.err = fmt.Errorf("%s: %w", d.name, err)
		return false
	}
	d.headers = headers
	return true
}

// Record returns the record produced by the last successful Next.
func (d *Decoder) Record() internal.Record { return d.rec }

// Err returns the first error encountered; nil after a clean end of stream.
func (d *Decoder) Err() error { return d.err }
