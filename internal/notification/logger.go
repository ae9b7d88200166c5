package notification

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// Logger grava cada evento na tabela notification_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev billing.Event) error {
	var payload string
	if b, err := json.Marshal(ev); err == nil {
		payload = string(b)
	}

	entry := models.NotificationLog{
		Type:           ev.Type,
		BillingRuleID:  ev.RuleID,
		BillingBatchID: ev.BatchID,
		HealthPlanID:   ev.HealthPlanID,
		Payload:        payload,
	}

	return l.db.Create(&entry).Error
}

// Compile-time check
var _ Sink = (*Logger)(nil)
