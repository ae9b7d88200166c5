package billing

import (
	"testing"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestValidateRule(t *testing.T) {
	cases := []struct {
		name string
		rule models.BillingRule
		code string // vazio = válida
	}{
		{"MensalValida", models.BillingRule{BillingType: models.BillingTypeMonthly, BillingDay: 15}, ""},
		{"TipoDesconhecido", models.BillingRule{BillingType: "quarterly"}, "invalid_billing_type"},
		{"MensalDiaZero", models.BillingRule{BillingType: models.BillingTypeMonthly, BillingDay: 0}, "invalid_billing_day"},
		{"MensalDia29", models.BillingRule{BillingType: models.BillingTypeMonthly, BillingDay: 29}, "invalid_billing_day"},
		{"SemanalDomingo", models.BillingRule{BillingType: models.BillingTypeWeekly, BillingDay: 0}, ""},
		{"SemanalDia7", models.BillingRule{BillingType: models.BillingTypeWeekly, BillingDay: 7}, "invalid_billing_day"},
		{"BatchSemGatilho", models.BillingRule{BillingType: models.BillingTypeBatch}, "batch_threshold_required"},
		{"BatchPorValor", models.BillingRule{BillingType: models.BillingTypeBatch, BatchAmountThreshold: 1000}, ""},
		{"BatchPorQuantidade", models.BillingRule{BillingType: models.BillingTypeBatch, BatchCountThreshold: 10}, ""},
		{"PorAtendimento", models.BillingRule{BillingType: models.BillingTypePerAppointment}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRule(&tc.rule)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestTriggersOn(t *testing.T) {
	monthly := &models.BillingRule{BillingType: models.BillingTypeMonthly, BillingDay: 15}

	if !TriggersOn(monthly, day(2026, 8, 15)) {
		t.Fatal("mensal deveria disparar no dia 15")
	}
	if TriggersOn(monthly, day(2026, 8, 16)) {
		t.Fatal("mensal não deveria disparar no dia 16")
	}

	// 2026-08-30 é um domingo
	weekly := &models.BillingRule{BillingType: models.BillingTypeWeekly, BillingDay: 0}
	if !TriggersOn(weekly, day(2026, 8, 30)) {
		t.Fatal("semanal com dia 0 deveria disparar no domingo")
	}
	if TriggersOn(weekly, day(2026, 8, 31)) {
		t.Fatal("semanal com dia 0 não deveria disparar na segunda")
	}

	batch := &models.BillingRule{BillingType: models.BillingTypeBatch, BatchCountThreshold: 5}
	if !TriggersOn(batch, day(2026, 8, 31)) {
		t.Fatal("batch não depende do calendário")
	}
}

func TestShouldBillBatch(t *testing.T) {
	r := &models.BillingRule{
		BillingType:          models.BillingTypeBatch,
		BatchAmountThreshold: 1000,
		BatchCountThreshold:  10,
	}

	if ShouldBillBatch(r, 999.99, 9) {
		t.Fatal("abaixo dos dois gatilhos não deveria faturar")
	}
	if !ShouldBillBatch(r, 1000, 1) {
		t.Fatal("valor no gatilho deveria faturar")
	}
	if !ShouldBillBatch(r, 10, 10) {
		t.Fatal("quantidade no gatilho deveria faturar")
	}

	// gatilho zerado é ignorado, não é "sempre dispara"
	onlyCount := &models.BillingRule{BillingType: models.BillingTypeBatch, BatchCountThreshold: 10}
	if ShouldBillBatch(onlyCount, 1e9, 9) {
		t.Fatal("gatilho de valor zerado não deveria disparar por valor")
	}
}

func TestDueDate(t *testing.T) {
	now := day(2026, 8, 15)

	r := &models.BillingRule{PaymentTermDays: 30}
	if got := DueDate(r, now, 10); !got.Equal(now.AddDate(0, 0, 30)) {
		t.Fatalf("prazo da regra ignorado: %s", got)
	}

	r = &models.BillingRule{}
	if got := DueDate(r, now, 10); !got.Equal(now.AddDate(0, 0, 10)) {
		t.Fatalf("default do sistema ignorado: %s", got)
	}
}

func TestPeriodFor(t *testing.T) {
	now := day(2026, 8, 15)

	t.Run("ComLoteAnterior", func(t *testing.T) {
		last := &models.BillingBatch{PeriodEnd: day(2026, 7, 31)}
		r := &models.BillingRule{BillingType: models.BillingTypeMonthly}

		start, end := PeriodFor(r, last, now)
		if !start.Equal(day(2026, 8, 1)) {
			t.Fatalf("início deveria ser o dia seguinte ao último lote: %s", start)
		}
		if !end.Equal(now) {
			t.Fatalf("fim deveria ser now: %s", end)
		}
	})

	t.Run("PrimeiraMensal", func(t *testing.T) {
		r := &models.BillingRule{BillingType: models.BillingTypeMonthly}
		start, _ := PeriodFor(r, nil, now)
		if !start.Equal(now.AddDate(0, -1, 0)) {
			t.Fatalf("primeira mensal recua um mês: %s", start)
		}
	})

	t.Run("PrimeiraSemanal", func(t *testing.T) {
		r := &models.BillingRule{BillingType: models.BillingTypeWeekly}
		start, _ := PeriodFor(r, nil, now)
		if !start.Equal(now.AddDate(0, 0, -7)) {
			t.Fatalf("primeira semanal recua uma semana: %s", start)
		}
	})
}

func TestStatusTransitions(t *testing.T) {
	if err := CanRegisterPayment(StatusPending); err != nil {
		t.Fatalf("pendente recebe pagamento: %v", err)
	}
	if err := CanRegisterPayment(StatusLate); err != nil {
		t.Fatalf("atrasado recebe pagamento: %v", err)
	}
	if err := CanRegisterPayment(StatusPaid); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("pago é imutável: %v", err)
	}

	if err := CanMarkLate(StatusPending); err != nil {
		t.Fatalf("pendente vira atrasado: %v", err)
	}
	if err := CanMarkLate(StatusPaid); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("pago não vira atrasado: %v", err)
	}
}
