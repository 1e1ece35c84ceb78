package reader

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filings.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filing.csv")
	content := "HDR,FEC,8.0\nSA11,C00123456,12345,20081131,50.00\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	stream, err := Open(path, testRegistry(t), testMapper())
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	count := 0
	for stream.Next() {
		if stream.Record().SourceFile != "filing.csv" {
			t.Fatalf("sourceFile=%q", stream.Record().SourceFile)
		}
		count++
	}
	if stream.Err() != nil {
		t.Fatal(stream.Err())
	}
	if count != 1 {
		t.Fatalf("count=%d", count)
	}
}

func TestZipConcatenatesMembersInNameOrder(t *testing.T) {
	path := writeZip(t, map[string]string{
		"b_second.csv": "HDR,FEC,8.0\nSA11,C2,22222,20080930,6000\n",
		"a_first.csv":  "HDR,FEC,8.0\nSA11,C1,11111,20081131,50.00\n",
	})

	stream, err := Open(path, testRegistry(t), testMapper())
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	sources := make([]string, 0)
	for stream.Next() {
		sources = append(sources, stream.Record().SourceFile)
	}
	if stream.Err() != nil {
		t.Fatal(stream.Err())
	}
	if len(sources) != 2 || sources[0] != "a_first.csv" || sources[1] != "b_second.csv" {
		t.Fatalf("sources=%v", sources)
	}
}

func TestZipMemberFailureCarriesMemberName(t *testing.T) {
	path := writeZip(t, map[string]string{
		"only.csv": "HDR,FEC,8.0\nZZ9,C1,11111\n",
	})

	stream, err := Open(path, testRegistry(t), testMapper())
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	if stream.Next() {
		t.Fatal("expected no records")
	}
	if !errors.Is(stream.Err(), ErrSchemaNotFound) {
		t.Fatalf("err=%v", stream.Err())
	}
	if msg := stream.Err().Error(); !strings.Contains(msg, "only.csv") {
		t.Fatalf("err=%q missing member name", msg)
	}
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	path := writeZip(t, map[string]string{
		"only.csv": "HDR,FEC,8.0\nSA11,C1,11111,20081131,50.00\n",
	})

	stream, err := Open(path, testRegistry(t), testMapper())
	if err != nil {
		t.Fatal(err)
	}
	for stream.Next() {
	}
	if err := stream.Close(); err != nil {
		t.Fatal(err)
	}
	if err := stream.Close(); err != nil {
		t.Fatal(err)
	}
	if stream.Next() {
		t.Fatal("closed stream advanced")
	}
}
