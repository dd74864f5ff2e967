package handler

import (
	"errors"
	"net/http"

	"wallet-service/internal/adapter/http/dto"
	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Create handles POST /v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	wallet, err := h.walletSvc.CreateWallet(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewWalletResponse(wallet))
}

// Get handles GET /v1/wallets/:uuid.
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewWalletResponse(wallet))
}

// Operation handles POST /v1/wallets/:uuid/operation.
// A missing wallet is reported as 400 on this route.
func (h *WalletHandler) Operation(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	wallet, err := h.walletSvc.ApplyOperation(c.Request.Context(), id, domain.OperationType(req.OperationType), req.Amount)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrWalletNotFound().Code {
			err = appErr.WithStatus(http.StatusBadRequest)
		}
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewWalletResponse(wallet))
}

// walletID binds and parses the :uuid path segment, answering 400 when malformed.
func walletID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.WalletURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation("Invalid wallet uuid"))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.UUID)
	if err != nil {
		response.Error(c, apperror.Validation("Invalid wallet uuid"))
		return uuid.Nil, false
	}
	return id, true
}
