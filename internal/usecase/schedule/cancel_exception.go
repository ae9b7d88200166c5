package schedule

import (
	"context"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
)

type CancelException struct {
	writer domain.Writer
}

func NewCancelException(writer domain.Writer) *CancelException {
	return &CancelException{writer: writer}
}

// Execute remove a exceção do prestador. Exceção recorrente leva junto
// as filhas geradas.
func (uc *CancelException) Execute(
	ctx context.Context,
	providerID uint,
	exceptionID uint,
) error {

	exc, err := uc.writer.GetException(ctx, providerID, exceptionID)
	if err != nil {
		return err
	}
	if exc == nil {
		return httperr.ErrBusiness("exception_not_found")
	}

	return uc.writer.DeleteExceptionTree(ctx, exc.ID)
}
