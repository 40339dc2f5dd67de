package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/core/ports"
)

// AccountHandler handles the user listing and the testing-only bulk reset.
type AccountHandler struct {
	accountService ports.AccountService
}

func NewAccountHandler(accountService ports.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List returns every account, newest first.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, usersResponse{
		TotalUsers: len(accounts),
		Users:      accounts,
	})
}

// Reset deletes every account and restarts id sequencing. The route is only
// mounted outside production.
//
// @Summary      Delete all users (testing only)
// @Tags         users
// @Produce      json
// @Success      200  {object}  resetResponse
// @Failure      500  {object}  map[string]string
// @Router       /users/reset [delete]
func (h *AccountHandler) Reset(c echo.Context) error {
	if err := h.accountService.Reset(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resetResponse{
		Message:    "All users deleted",
		TotalUsers: 0,
	})
}
