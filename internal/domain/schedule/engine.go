package schedule

// Motivos de indisponibilidade retornados junto com listas vazias.
// São códigos estáveis consumidos pela API para exibição.
const (
	ReasonNotInSchedule  = "not_in_regular_schedule"
	ReasonException      = "schedule_exception"
	ReasonLocation       = "location_mismatch"
	ReasonMaxAppointment = "max_appointments_reached"
)

// DayWindow é a grade do dia já resolvida para minutos.
type DayWindow struct {
	Start Minutes
	End   Minutes

	HasBreak   bool
	BreakStart Minutes
	BreakEnd   Minutes

	Location  string
	Available bool
}

// SlotInput reúne tudo que o cálculo de um dia precisa. O motor é puro:
// não consulta repositório, não olha relógio.
type SlotInput struct {
	Window DayWindow

	// Exceção de dia inteiro cobrindo a data. Exceções parciais são
	// validadas na criação mas NÃO são consultadas slot a slot — o
	// sistema de origem nunca fez essa checagem e consumidores
	// dependem do comportamento atual.
	FullDayException bool

	Booked []Interval

	SlotMinutes   int
	BufferMinutes int

	// 0 = sem teto diário
	MaxDaily int

	LocationFilter string
}

// ComputeDaySlots enumera os slots livres de um dia em ordem
// cronológica. Lista vazia vem acompanhada do motivo.
func ComputeDaySlots(in SlotInput) ([]Slot, string) {
	if !in.Window.Available || in.Window.End <= in.Window.Start {
		return nil, ReasonNotInSchedule
	}

	if in.FullDayException {
		return nil, ReasonException
	}

	if in.LocationFilter != "" && in.Window.Location != "" && in.Window.Location != in.LocationFilter {
		return nil, ReasonLocation
	}

	remaining := -1
	if in.MaxDaily > 0 {
		remaining = in.MaxDaily - len(in.Booked)
		if remaining <= 0 {
			return nil, ReasonMaxAppointment
		}
	}

	dur := Minutes(in.SlotMinutes)
	buffer := Minutes(in.BufferMinutes)
	brk := Interval{Start: in.Window.BreakStart, End: in.Window.BreakEnd}

	var slots []Slot

	for cur := in.Window.Start; cur+dur <= in.Window.End; {
		slotStart := cur
		slotEnd := cur + dur

		// pausa
		if in.Window.HasBreak && brk.Overlaps(slotStart, slotEnd) {
			cur += dur
			continue
		}

		// agendamentos existentes
		conflict := false
		for _, b := range in.Booked {
			if b.Overlaps(slotStart, slotEnd) {
				conflict = true
				break
			}
		}
		if conflict {
			cur += dur
			continue
		}

		// o buffer entra só depois de um slot aceito; se o fim com
		// buffer estoura a janela, o slot é descartado (a agenda não
		// atravessa a meia-noite)
		if slotEnd+buffer > in.Window.End {
			break
		}

		slots = append(slots, NewSlot(slotStart, slotEnd))
		cur = slotEnd + buffer
	}

	// o teto corta mantendo os mais cedo (a enumeração já é cronológica)
	if remaining > 0 && len(slots) > remaining {
		slots = slots[:remaining]
	}

	return slots, ""
}
