package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// LinkGenerator cria o link de pagamento de um lote. A notificação de
// lote gerado carrega o link; o registro do pagamento em si chega por
// fora (webhook/operacional) e não pertence a este núcleo.
type LinkGenerator interface {
	LinkFor(ctx context.Context, batch *models.BillingBatch, planName string) (string, error)
}

// MercadoPago implementa LinkGenerator via checkout preference.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) LinkFor(
	ctx context.Context,
	batch *models.BillingBatch,
	planName string,
) (string, error) {

	req := preference.Request{
		ExternalReference: batch.Reference,
		Items: []preference.ItemRequest{
			{
				Title: fmt.Sprintf(
					"Fatura %s — período %s a %s",
					planName,
					batch.PeriodStart.Format("02/01/2006"),
					batch.PeriodEnd.Format("02/01/2006"),
				),
				Quantity:   1,
				UnitPrice:  batch.TotalAmount,
				CurrencyID: "BRL",
			},
		},
	}

	resource, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resource.InitPoint, nil
}

// Compile-time check
var _ LinkGenerator = (*MercadoPago)(nil)
