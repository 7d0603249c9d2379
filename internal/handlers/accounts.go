package handlers

import (
	"fundsledger/internal/errors"
	"fundsledger/internal/middleware"
	"fundsledger/internal/models"
	"fundsledger/internal/services/ledger"
	"fundsledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes read-only account endpoints.
type AccountHandler struct {
	ledger ledger.Service
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(s ledger.Service) *AccountHandler { return &AccountHandler{ledger: s} }

type accountView struct {
	models.Account
	Details string `json:"details"`
}

func viewOf(a models.Account) accountView {
	return accountView{Account: a, Details: a.Details()}
}

// List handles GET /accounts requests.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	conn, ok := middleware.Conn(c)
	if !ok {
		return response.ServerError(c, "no storage connection")
	}

	accounts, err := h.ledger.ListAccounts(c.UserContext(), conn)
	if err != nil {
		return response.Domain(c, errors.ForError(err), nil)
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, viewOf(a))
	}
	return response.Success(c, "accounts retrieved", views)
}

// Get handles GET /accounts/:id requests, including recent transfers.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid account id")
	}
	conn, ok := middleware.Conn(c)
	if !ok {
		return response.ServerError(c, "no storage connection")
	}

	ctx := c.UserContext()
	account, err := h.ledger.FindAccount(ctx, conn, uint(id))
	if err != nil {
		return response.Domain(c, errors.ForError(err), nil)
	}
	transfers, err := h.ledger.RecentTransfers(ctx, conn, account.ID, c.QueryInt("limit", ledger.DefaultHistoryLimit))
	if err != nil {
		return response.Domain(c, errors.ForError(err), nil)
	}

	return response.Success(c, "account retrieved", fiber.Map{
		"account":   viewOf(*account),
		"transfers": transfers,
	})
}
