package schedule

import "time"

// Convenção única de dia da semana do sistema inteiro:
// domingo=0 .. sábado=6, igual a time.Weekday. Toda fronteira que
// recebe um número de dia (grade semanal, regra de faturamento weekly)
// usa esta convenção — nunca a de segunda=1.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}
