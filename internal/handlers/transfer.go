package handlers

import (
	"fundsledger/internal/errors"
	"fundsledger/internal/middleware"
	"fundsledger/internal/services/ledger"
	"fundsledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the funds transfer endpoint.
type TransferHandler struct {
	ledger ledger.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s ledger.Service) *TransferHandler { return &TransferHandler{ledger: s} }

type transferRequest struct {
	FromID          uint             `json:"from_id"`
	ToID            uint             `json:"to_id"`
	Amount          *decimal.Decimal `json:"amount"`
	SimulateFailure bool             `json:"simulate_failure"`
}

// Transfer handles POST /transfers requests. Amount may be sent as a JSON
// number or a string.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.FromID == 0 || req.ToID == 0 {
		return response.ValidationError(c, "from_id and to_id are required")
	}
	if req.Amount == nil {
		return response.ValidationError(c, "amount is required")
	}

	conn, ok := middleware.Conn(c)
	if !ok {
		return response.ServerError(c, "no storage connection")
	}

	outcome := h.ledger.Transfer(c.UserContext(), conn, ledger.TransferRequest{
		FromID:          req.FromID,
		ToID:            req.ToID,
		Amount:          *req.Amount,
		SimulateFailure: req.SimulateFailure,
	})
	if !outcome.Committed() {
		return response.Domain(c, errors.ForReason(outcome.Reason), outcome)
	}
	return response.Success(c, "transfer completed", outcome)
}
