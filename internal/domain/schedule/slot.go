package schedule

import (
	"fmt"
	"time"
)

// O motor trabalha em minutos desde a meia-noite. A agenda de um
// prestador é limitada a um único dia civil, então um int basta e
// evita carregar *time.Location para dentro do cálculo.
type Minutes int

// ParseHM converte "15:04" para minutos do dia.
func ParseHM(hm string) (Minutes, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return Minutes(t.Hour()*60 + t.Minute()), nil
}

func (m Minutes) Format() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Slot é um intervalo candidato [Start, End) dentro da janela do dia.
type Slot struct {
	Start Minutes `json:"-"`
	End   Minutes `json:"-"`

	StartLabel string `json:"start"`
	EndLabel   string `json:"end"`

	// Texto pronto para exibição; não faz parte do contrato de horário
	Display string `json:"display"`
}

func NewSlot(start, end Minutes) Slot {
	return Slot{
		Start:      start,
		End:        end,
		StartLabel: start.Format(),
		EndLabel:   end.Format(),
		Display:    fmt.Sprintf("%s às %s", start.Format(), end.Format()),
	}
}

// Interval é um intervalo ocupado [Start, End) — projeção de um
// atendimento não cancelado ou da pausa da grade.
type Interval struct {
	Start Minutes
	End   Minutes
}

// Overlaps usa semântica meio-aberta (fim exclusivo): intervalos que só
// se encostam (10:00-10:30 e 10:30-11:00) NÃO colidem.
func (i Interval) Overlaps(start, end Minutes) bool {
	return start < i.End && end > i.Start
}
