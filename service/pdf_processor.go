package service

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	Validate(pdfData []byte) error
	ExtractText(pdfData []byte) (string, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// Validate checks that the upload is a structurally sound PDF before any
// extraction is attempted.
func (p *pdfProcessor) Validate(pdfData []byte) error {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	return nil
}

// ExtractText pulls the embedded text out of every page, one output line per
// text row with words space-separated. Scanned PDFs yield empty text; that is
// the caller's signal, not an error. OCR of scanned pages is out of scope.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					textBuilder.WriteString(" ")
				}
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}
