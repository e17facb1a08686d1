package service

import (
	"log"
	"strings"

	"github.com/martinvega/visa462-tracker/dto"
	"github.com/martinvega/visa462-tracker/utils"
)

type PayslipService struct {
	pdfProcessor PDFProcessor
}

func NewPayslipService(pdfProcessor PDFProcessor) *PayslipService {
	return &PayslipService{
		pdfProcessor: pdfProcessor,
	}
}

// ExtractCandidates turns an uploaded payslip PDF into a ranked candidate
// list for human confirmation. Extraction failures degrade to an empty
// candidate list with a status the UI can explain; only a malformed upload
// is an error.
func (s *PayslipService) ExtractCandidates(pdfData []byte) (*dto.ExtractionResponse, error) {
	if err := s.pdfProcessor.Validate(pdfData); err != nil {
		return nil, err
	}

	text, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		return nil, err
	}

	return s.ExtractCandidatesFromText(text), nil
}

// ExtractCandidatesFromText runs the detection strategies over already
// extracted text. Split out so manual text paste works without a PDF.
func (s *PayslipService) ExtractCandidatesFromText(text string) *dto.ExtractionResponse {
	if strings.TrimSpace(text) == "" {
		log.Println("payslip has no extractable text, likely scanned")
		return &dto.ExtractionResponse{
			Status:     dto.ExtractionNoText,
			Candidates: []dto.CandidateHours{},
			Message:    "no text could be extracted; enter hours manually",
		}
	}

	candidates := utils.ExtractCandidateHours(text)
	if len(candidates) == 0 {
		return &dto.ExtractionResponse{
			Status:     dto.ExtractionNoCandidates,
			Candidates: []dto.CandidateHours{},
			Message:    "no plausible hour values found; enter hours manually",
		}
	}

	log.Printf("extracted %d candidate hour values", len(candidates))
	return &dto.ExtractionResponse{
		Status:     dto.ExtractionOK,
		Candidates: candidates,
	}
}
