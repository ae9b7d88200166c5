package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StartOfDay trunca para meia-noite no fuso informado. A agenda e os
// gatilhos de faturamento trabalham sempre com granularidade de dia.
func StartOfDay(t time.Time, tz string) time.Time {
	loc := Location(tz)
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween conta dias corridos de a até b (b - a), ignorando horas.
func DaysBetween(a, b time.Time, tz string) int {
	sa := StartOfDay(a, tz)
	sb := StartOfDay(b, tz)
	return int(sb.Sub(sa).Hours() / 24)
}
