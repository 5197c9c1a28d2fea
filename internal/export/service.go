package export

import (
	"context"
	"fmt"

	"cvwizard-backend/internal/compose"
	"cvwizard-backend/internal/forms"
	"cvwizard-backend/internal/shared/metrics"
	"cvwizard-backend/internal/shared/storage/files"
	"cvwizard-backend/internal/shared/telemetry"
	"cvwizard-backend/internal/shared/util"
)

// Service produces the final document bundle for a session.
type Service struct {
	States    *forms.Service
	Assembler compose.Assembler
	Store     *files.Store
	Chain     *Chain
}

// Result describes one finished export. PDF keys are empty when no converter
// produced a verified PDF; the DOCX files are always present.
type Result struct {
	CVDocx string `json:"cvDocx"`
	CLDocx string `json:"coverLetterDocx"`
	CVPDF  string `json:"cvPdf,omitempty"`
	CLPDF  string `json:"coverLetterPdf,omitempty"`
	PDFOK  bool   `json:"pdfAvailable"`
}

// Export assembles both documents from the session's form state, serializes
// them to DOCX, and attempts PDF conversion through the fallback chain.
func (s *Service) Export(ctx context.Context, sessionID string) (Result, error) {
	state, err := s.States.Current(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if state.Step != forms.StepReview {
		return Result{}, ErrNotReady
	}

	metrics.IncExportStarted()

	cvModel, err := s.Assembler.BuildCV(state)
	if err != nil {
		metrics.IncExportFailed()
		return Result{}, err
	}
	clModel, err := s.Assembler.BuildCoverLetter(state)
	if err != nil {
		metrics.IncExportFailed()
		return Result{}, err
	}

	base := util.FileBaseName(state.Personal.FirstName + "_" + state.Personal.LastName)
	result := Result{}

	result.CVDocx, err = s.renderAndStore(ctx, sessionID, base+"_CV.docx", cvModel)
	if err != nil {
		metrics.IncExportFailed()
		return Result{}, err
	}
	result.CLDocx, err = s.renderAndStore(ctx, sessionID, base+"_CoverLetter.docx", clModel)
	if err != nil {
		metrics.IncExportFailed()
		return Result{}, err
	}

	cvPDF, err1 := s.convert(ctx, result.CVDocx)
	clPDF, err2 := s.convert(ctx, result.CLDocx)
	if err1 != nil || err2 != nil {
		metrics.IncPDFUnavailable()
		telemetry.Info("export completed without pdf", map[string]any{
			"session_hash": util.HashSessionKey(sessionID),
		})
	} else {
		result.CVPDF = cvPDF
		result.CLPDF = clPDF
		result.PDFOK = true
	}

	metrics.IncExportCompleted()
	return result, nil
}

func (s *Service) renderAndStore(ctx context.Context, sessionID, fileName string, model compose.DocumentModel) (string, error) {
	data, err := RenderDocx(model)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", fileName, err)
	}
	key, err := s.Store.Save(ctx, sessionID, fileName, data)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", fileName, err)
	}
	return key, nil
}

// convert runs the PDF chain against a stored DOCX and returns the stored
// PDF's key.
func (s *Service) convert(ctx context.Context, docxKey string) (string, error) {
	docxPath, err := s.Store.Path(docxKey)
	if err != nil {
		return "", err
	}
	pdfKey := docxKey[:len(docxKey)-len(".docx")] + ".pdf"
	pdfPath, err := s.Store.Path(pdfKey)
	if err != nil {
		return "", err
	}

	start := metrics.NowMillis()
	converter, err := s.Chain.Convert(ctx, docxPath, pdfPath)
	if err != nil {
		return "", err
	}
	metrics.ObserveConversionDurationMs(metrics.NowMillis() - start)

	telemetry.Info("pdf conversion succeeded", map[string]any{
		"converter": converter,
		"file":      pdfKey,
	})
	return pdfKey, nil
}
