package handlers

import (
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por prestador
// --------------------------------------------------

// resolve o fuso oficial do prestador
func locationFromProvider(p *models.Provider) *time.Location {
	if p != nil {
		return timezone.Location(p.Timezone)
	}
	return timezone.Location("")
}

func nowInProvider(p *models.Provider) time.Time {
	return time.Now().In(locationFromProvider(p))
}

func parseDateInProvider(p *models.Provider, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromProvider(p),
	)
}
