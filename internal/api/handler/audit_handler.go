package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/core/ports"
)

const maxAuditLimit = 500

// AuditHandler serves read access to the security audit trail.
type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListRecent returns the latest audit events, newest first.
//
// @Summary      List recent authentication events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events (default 50, cap 500)"
// @Success      200    {object}  auditResponse
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /audit [get]
func (h *AuditHandler) ListRecent(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	events, err := h.auditService.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, auditResponse{Events: events})
}
