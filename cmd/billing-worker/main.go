package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	dbpkg "github.com/ConectaSaudeBR/rede-scheduler/internal/db"
	infraRepo "github.com/ConectaSaudeBR/rede-scheduler/internal/infra/repository"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/notification"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/payments"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
	ucBilling "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/billing"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("billing-worker starting up")

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	log.Printf("running billing worker interval=%s", cfg.BillingRunInterval)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	billingRepo := infraRepo.NewBillingGormRepository(db)
	dispatcher := notification.NewDispatcher(notification.New(db))

	var linkGen payments.LinkGenerator
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercadopago disabled: %v", err)
		} else {
			linkGen = mp
		}
	}

	evaluateRule := ucBilling.NewEvaluateRule(billingRepo, dispatcher, linkGen, cfg)
	scanPending := ucBilling.NewScanPending(billingRepo, dispatcher)
	evaluateAll := ucBilling.NewEvaluateAll(billingRepo, evaluateRule, scanPending)

	// Run once at startup
	runOnce(rootCtx, evaluateAll)

	ticker := time.NewTicker(cfg.BillingRunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutdown signal received, stopping billing worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, evaluateAll)
		}
	}
}

func runOnce(ctx context.Context, uc *ucBilling.EvaluateAll) {
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	start := time.Now()
	summary, err := uc.Execute(runCtx, timezone.Now())
	if err != nil {
		log.Printf("billing run error: %v", err)
		return
	}
	log.Printf(
		"billing run complete in %s rules=%d batches=%d failures=%d",
		time.Since(start),
		summary.RulesEvaluated,
		summary.BatchesCreated,
		summary.Failures,
	)
}
