package notification

import (
	"log"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
)

// Sink recebe o evento já despachado. A implementação padrão grava na
// tabela de notificações; entrega real (e-mail, WhatsApp) é de quem
// consome essa tabela.
type Sink interface {
	Log(ev billing.Event) error
}

// Dispatcher desacopla o faturamento do destino das notificações:
// fila em memória + worker. Falha ou fila cheia nunca propaga para a
// transação de faturamento.
type Dispatcher struct {
	sink  Sink
	queue chan billing.Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan billing.Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			log.Println("notification error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev billing.Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca travar o faturamento)
		log.Println("notification queue full, dropping event")
	}
}

// Compile-time check
var _ billing.Notifier = (*Dispatcher)(nil)
