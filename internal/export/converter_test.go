package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeConverter struct {
	name      string
	available bool
	convert   func(docxPath, pdfPath string) error
}

func (f fakeConverter) Name() string    { return f.name }
func (f fakeConverter) Available() bool { return f.available }
func (f fakeConverter) Convert(_ context.Context, docxPath, pdfPath string) error {
	return f.convert(docxPath, pdfPath)
}

// minimalPDF assembles a one-page PDF with a correct xref table so the
// verification parser accepts it.
func minimalPDF() []byte {
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
	}

	var body []byte
	body = append(body, "%PDF-1.4\n"...)
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = len(body)
		body = append(body, obj...)
	}

	xrefStart := len(body)
	body = append(body, fmt.Sprintf("xref\n0 %d\n", len(objects)+1)...)
	body = append(body, "0000000000 65535 f \n"...)
	for _, off := range offsets {
		body = append(body, fmt.Sprintf("%010d 00000 n \n", off)...)
	}
	body = append(body, fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)...)
	return body
}

func writesPDF(t *testing.T) func(string, string) error {
	t.Helper()
	return func(_, pdfPath string) error {
		return os.WriteFile(pdfPath, minimalPDF(), 0o644)
	}
}

func chainPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	docxPath := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(docxPath, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return docxPath, filepath.Join(dir, "doc.pdf")
}

func TestChainFallsBackToSecondConverter(t *testing.T) {
	docxPath, pdfPath := chainPaths(t)
	chain := &Chain{
		timeout: time.Second,
		converters: []Converter{
			fakeConverter{name: "primary", available: true, convert: func(_, _ string) error {
				return errors.New("boom")
			}},
			fakeConverter{name: "secondary", available: true, convert: writesPDF(t)},
		},
	}

	name, err := chain.Convert(context.Background(), docxPath, pdfPath)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if name != "secondary" {
		t.Fatalf("expected secondary converter, got %s", name)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		t.Fatalf("expected pdf written: %v", err)
	}
}

func TestChainSkipsUnavailableConverters(t *testing.T) {
	docxPath, pdfPath := chainPaths(t)
	chain := &Chain{
		timeout: time.Second,
		converters: []Converter{
			fakeConverter{name: "missing", available: false, convert: func(_, _ string) error {
				t.Fatalf("unavailable converter must not run")
				return nil
			}},
			fakeConverter{name: "installed", available: true, convert: writesPDF(t)},
		},
	}

	name, err := chain.Convert(context.Background(), docxPath, pdfPath)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if name != "installed" {
		t.Fatalf("expected installed converter, got %s", name)
	}
}

func TestChainAllConvertersExhausted(t *testing.T) {
	docxPath, pdfPath := chainPaths(t)
	chain := &Chain{
		timeout: time.Second,
		converters: []Converter{
			fakeConverter{name: "a", available: false},
			fakeConverter{name: "b", available: true, convert: func(_, _ string) error {
				return errors.New("crashed")
			}},
		},
	}

	if _, err := chain.Convert(context.Background(), docxPath, pdfPath); !errors.Is(err, ErrConversionUnavailable) {
		t.Fatalf("expected ErrConversionUnavailable, got %v", err)
	}
}

func TestChainRejectsUnreadableOutput(t *testing.T) {
	docxPath, pdfPath := chainPaths(t)
	chain := &Chain{
		timeout: time.Second,
		converters: []Converter{
			fakeConverter{name: "broken", available: true, convert: func(_, p string) error {
				return os.WriteFile(p, []byte("not a pdf"), 0o644)
			}},
		},
	}

	if _, err := chain.Convert(context.Background(), docxPath, pdfPath); !errors.Is(err, ErrConversionUnavailable) {
		t.Fatalf("expected ErrConversionUnavailable, got %v", err)
	}
	if _, err := os.Stat(pdfPath); !os.IsNotExist(err) {
		t.Fatalf("expected rejected output removed, got %v", err)
	}
}

func TestNewChainSkipsUnknownNames(t *testing.T) {
	chain := NewChain([]string{"docx2pdf", "wkhtmltopdf", "soffice"}, time.Second)
	if len(chain.converters) != 2 {
		t.Fatalf("expected 2 converters, got %d", len(chain.converters))
	}
	if chain.converters[0].Name() != "docx2pdf" || chain.converters[1].Name() != "soffice" {
		t.Fatalf("unexpected converter order: %s, %s", chain.converters[0].Name(), chain.converters[1].Name())
	}
}

func TestVerifyPDFAcceptsGeneratedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.pdf")
	if err := os.WriteFile(path, minimalPDF(), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if err := verifyPDF(path); err != nil {
		t.Fatalf("verifyPDF: %v", err)
	}
}
