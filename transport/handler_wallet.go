package transport

import (
	"net/http"

	"github.com/nedasoft/marketplace-api/constant"
	utilsContext "github.com/nedasoft/marketplace-api/utils/context"
	"github.com/nedasoft/marketplace-api/utils/errors"
)

// GetWallet handler
// @Summary Get wallet
// @Description Current user's wallet balances
// @Tags Wallet
// @Produce json
// @Success 200 {object} model.WalletEntity
// @Router /wallet [get]
func (s *RestHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.WalletApp.Get(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListWalletTransactions handler
// @Summary List wallet transactions
// @Tags Wallet
// @Produce json
// @Success 200 {array} model.WalletTransactionEntity
// @Router /wallet/transactions [get]
func (s *RestHandler) ListWalletTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.WalletApp.ListTransactions(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
