package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/martinvega/visa462-tracker/dto"
	"github.com/martinvega/visa462-tracker/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	ledgerService *service.LedgerService
}

func NewProfileHandler(ledgerService *service.LedgerService) *ProfileHandler {
	return &ProfileHandler{
		ledgerService: ledgerService,
	}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	profile, err := h.ledgerService.CreateProfile(req.Name, req.TargetDays)
	if err != nil {
		sendLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// ListProfiles handles GET /profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	names, err := h.ledgerService.ListProfiles()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "failed to list profiles", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"profiles": names})
}

// GetProfile handles GET /profiles/:name
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.ledgerService.GetProfile(c.Param("name"))
	if err != nil {
		sendLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles DELETE /profiles/:name
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.ledgerService.DeleteProfile(c.Param("name")); err != nil {
		sendLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConfirmHours handles POST /profiles/:name/accruals
func (h *ProfileHandler) ConfirmHours(c *gin.Context) {
	var req dto.ConfirmHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.ledgerService.Confirm(c.Param("name"), req.Hours, req.SourceLabel)
	if err != nil {
		sendLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RevertEntry handles DELETE /profiles/:name/accruals/:id
func (h *ProfileHandler) RevertEntry(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid entry id", err)
		return
	}

	profile, err := h.ledgerService.Revert(c.Param("name"), entryID)
	if err != nil {
		sendLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ResetProfile handles POST /profiles/:name/reset
func (h *ProfileHandler) ResetProfile(c *gin.Context) {
	profile, err := h.ledgerService.Reset(c.Param("name"))
	if err != nil {
		sendLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Report handles GET /profiles/:name/report
func (h *ProfileHandler) Report(c *gin.Context) {
	report, err := h.ledgerService.Report(c.Param("name"))
	if err != nil {
		sendLedgerError(c, err)
		return
	}
	c.String(http.StatusOK, report)
}

// sendLedgerError maps ledger sentinel errors onto HTTP statuses.
func sendLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrProfileNotFound), errors.Is(err, dto.ErrEntryNotFound):
		sendError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, dto.ErrProfileExists):
		sendError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, dto.ErrInvalidTarget), errors.Is(err, dto.ErrNegativeHours):
		sendError(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, dto.ErrNegativeDays):
		sendError(c, http.StatusConflict, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "operation failed", err)
	}
}
