package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ledongthuc/pdf"

	"cvwizard-backend/internal/shared/telemetry"
)

// Converter turns a DOCX file on disk into a PDF file on disk.
type Converter interface {
	Name() string
	Available() bool
	Convert(ctx context.Context, docxPath, pdfPath string) error
}

// Chain tries converters in order and settles for the first verified PDF.
type Chain struct {
	converters []Converter
	timeout    time.Duration
}

// NewChain builds a chain from configured converter names. Unknown names are
// skipped with a warning so a typo in config degrades to DOCX-only instead of
// failing startup.
func NewChain(names []string, timeout time.Duration) *Chain {
	chain := &Chain{timeout: timeout}
	for _, name := range names {
		switch name {
		case "docx2pdf":
			chain.converters = append(chain.converters, Docx2PDFConverter{})
		case "soffice":
			chain.converters = append(chain.converters, SofficeConverter{})
		default:
			telemetry.Warn("unknown pdf converter in config", map[string]any{"converter": name})
		}
	}
	return chain
}

// Convert runs the fallback chain. It returns the name of the converter that
// produced a verified PDF, or ErrConversionUnavailable when every converter
// is missing or failed.
func (c *Chain) Convert(ctx context.Context, docxPath, pdfPath string) (string, error) {
	for _, converter := range c.converters {
		if !converter.Available() {
			telemetry.Info("pdf converter not installed, trying next", map[string]any{
				"converter": converter.Name(),
			})
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := converter.Convert(attemptCtx, docxPath, pdfPath)
		cancel()
		if err != nil {
			telemetry.Warn("pdf conversion failed, trying next", map[string]any{
				"converter": converter.Name(),
				"error":     err.Error(),
			})
			continue
		}

		if err := verifyPDF(pdfPath); err != nil {
			telemetry.Warn("converter produced unreadable pdf, trying next", map[string]any{
				"converter": converter.Name(),
				"error":     err.Error(),
			})
			os.Remove(pdfPath)
			continue
		}
		return converter.Name(), nil
	}
	return "", ErrConversionUnavailable
}

// Docx2PDFConverter shells out to the docx2pdf CLI.
type Docx2PDFConverter struct{}

func (Docx2PDFConverter) Name() string { return "docx2pdf" }

func (Docx2PDFConverter) Available() bool {
	_, err := exec.LookPath("docx2pdf")
	return err == nil
}

func (Docx2PDFConverter) Convert(ctx context.Context, docxPath, pdfPath string) error {
	cmd := exec.CommandContext(ctx, "docx2pdf", docxPath, pdfPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("docx2pdf: %w: %s", err, truncate(out, 256))
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("docx2pdf produced no output: %w", err)
	}
	return nil
}

// SofficeConverter shells out to LibreOffice headless. soffice names its
// output after the input file, so the result may need a rename into place.
type SofficeConverter struct{}

func (SofficeConverter) Name() string { return "soffice" }

func (SofficeConverter) Available() bool {
	_, err := exec.LookPath("soffice")
	return err == nil
}

func (SofficeConverter) Convert(ctx context.Context, docxPath, pdfPath string) error {
	outDir := filepath.Dir(pdfPath)
	cmd := exec.CommandContext(ctx, "soffice", "--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("soffice: %w: %s", err, truncate(out, 256))
	}

	base := filepath.Base(docxPath)
	produced := filepath.Join(outDir, base[:len(base)-len(filepath.Ext(base))]+".pdf")
	if produced != pdfPath {
		if err := os.Rename(produced, pdfPath); err != nil {
			return fmt.Errorf("soffice output rename: %w", err)
		}
	}
	return nil
}

// verifyPDF opens the file with a real PDF parser and requires at least one
// page. A zero-byte or truncated file from a crashed converter fails here.
func verifyPDF(path string) error {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()
	if reader.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
