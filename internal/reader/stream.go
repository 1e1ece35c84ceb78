package reader

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fecdec/internal"
	"fecdec/internal/schema"
)

// Stream is a lazy, forward-only, single-pass sequence of normalized
// records. Close is safe to call at any point, including mid-stream.
type Stream interface {
	Next() bool
	Record() internal.Record
	Err() error
	Close() error
}

// Open returns a record stream for one input path, unpacking .zip
// containers and decoding anything else as a single delimited file.
func Open(path string, registry *schema.Registry, mapper *schema.Mapper) (Stream, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return OpenZip(path, registry, mapper)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileStream{Decoder: NewDecoder(f, filepath.Base(path), registry, mapper), f: f}, nil
}

type fileStream struct {
	*Decoder
	f      *os.File
	closed bool
}

func (s *fileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}

// zipStream concatenates the records of every archive member, visited in
// name order. The archive handle is released on Close and as soon as the
// stream is exhausted.
type zipStream struct {
	zr       *zip.ReadCloser
	members  []*zip.File
	registry *schema.Registry
	mapper   *schema.Mapper

	cur    *Decoder
	curRC  io.ReadCloser
	rec    internal.Record
	err    error
	closed bool
}

func OpenZip(path string, registry *schema.Registry, mapper *schema.Mapper) (Stream, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	members := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, f)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return &zipStream{zr: zr, members: members, registry: registry, mapper: mapper}, nil
}

func (s *zipStream) Next() bool {
	if s.err != nil || s.closed {
		return false
	}
	for {
		if s.cur == nil {
			if len(s.members) == 0 {
				_ = s.Close()
				return false
			}
			member := s.members[0]
			s.members = s.members[1:]
			rc, err := member.Open()
			if err != nil {
				s.err = fmt.Errorf("%s: %w", member.Name, err)
				return false
			}
			s.cur = NewDecoder(rc, member.Name, s.registry, s.mapper)
			s.curRC = rc
		}
		if s.cur.Next() {
			s.rec = s.cur.Record()
			return true
		}
		err := s.cur.Err()
		_ = s.curRC.Close()
		s.cur, s.curRC = nil, nil
		if err != nil {
			s.err = err
			return false
		}
	}
}

func (s *zipStream) Record() internal.Record { return s.rec }

func (s *zipStream) Err() error { return s.err }

func (s *zipStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.curRC != nil {
		_ = s.curRC.Close()
		s.cur, s.curRC = nil, nil
	}
	return s.zr.Close()
}
