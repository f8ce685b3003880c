package service_interfaces

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/commons"
	"github.com/oakline/banking-ledger/src/internal/domain"
)

type TransferService interface {
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

// TransferNotifier receives the completed-transfer event. Delivery is
// best-effort and never affects the transfer outcome.
type TransferNotifier interface {
	TransferCompleted(transfer domain.Transfer) error
}
