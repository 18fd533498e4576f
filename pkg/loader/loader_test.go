package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	got, err := Extract("complaint.txt", []byte("  The plaintiff alleges breach.  \n"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "The plaintiff alleges breach." {
		t.Errorf("Extract() = %q", got)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	if _, err := Extract("evidence.mp4", []byte("x")); err == nil {
		t.Error("Extract() expected error for unsupported extension")
	}
}

func TestExtract_Docx(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Section 73 of the </w:t></w:r><w:r><w:t>Contract Act</w:t></w:r></w:p>
    <w:p><w:r><w:t>governs compensation.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	got, err := Extract("brief.docx", buildDocx(t, doc))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "Section 73 of the Contract Act\ngoverns compensation."
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()

	if _, err := Extract("brief.docx", buf.Bytes()); err == nil {
		t.Error("Extract() expected error for docx without document.xml")
	}
}

func TestLoader_CachesFetches(t *testing.T) {
	var calls atomic.Int32
	l := New(func(ctx context.Context, key string) ([]byte, error) {
		calls.Add(1)
		return []byte("case summary"), nil
	})

	for range 3 {
		got, err := l.Text(context.Background(), "cases/abc/doc", "summary.txt")
		if err != nil {
			t.Fatalf("Text() error = %v", err)
		}
		if got != "case summary" {
			t.Errorf("Text() = %q", got)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", calls.Load())
	}
}

func TestLoader_FetchErrorNotCached(t *testing.T) {
	var calls atomic.Int32
	l := New(func(ctx context.Context, key string) ([]byte, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("transient storage error")
		}
		return []byte("recovered"), nil
	})

	if _, err := l.Text(context.Background(), "k", "doc.txt"); err == nil {
		t.Fatal("Text() expected error on first fetch")
	}
	got, err := l.Text(context.Background(), "k", "doc.txt")
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "recovered" {
		t.Errorf("Text() = %q, want recovered", got)
	}
}
