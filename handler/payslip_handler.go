package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/martinvega/visa462-tracker/dto"
	"github.com/martinvega/visa462-tracker/service"

	"github.com/gin-gonic/gin"
)

type PayslipHandler struct {
	payslipService *service.PayslipService
}

func NewPayslipHandler(payslipService *service.PayslipService) *PayslipHandler {
	return &PayslipHandler{
		payslipService: payslipService,
	}
}

// ExtractHours handles POST /payslip/extract. The response always carries a
// candidate list; an empty one with a status message means the reviewer
// should fall back to manual entry.
func (h *PayslipHandler) ExtractHours(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, "payslip file is required", err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		sendError(c, http.StatusBadRequest, "failed to open upload", err)
		return
	}
	defer f.Close()

	pdfData, err := io.ReadAll(f)
	if err != nil {
		sendError(c, http.StatusBadRequest, "failed to read upload", err)
		return
	}

	log.Printf("extracting hours from %s (%d bytes)", fileHeader.Filename, len(pdfData))

	response, err := h.payslipService.ExtractCandidates(pdfData)
	if err != nil {
		sendError(c, http.StatusUnprocessableEntity, "failed to process payslip", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "REQUEST_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
