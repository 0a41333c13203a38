package contratacao

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de uma contratação. O ciclo de vida é somente por status:
// uma contratação aceita nunca é apagada do banco.
const (
	StatusPendente               = "pendente"
	StatusAceita                 = "aceita"
	StatusEmAndamento            = "em-andamento"
	StatusConcluida              = "concluida"
	StatusEmDisputa              = "em-disputa"
	StatusCanceladaPeloComprador = "cancelada-pelo-comprador"
	StatusCanceladaPeloPrestador = "cancelada-pelo-prestador"
	StatusRecusada               = "recusada"
)

// Contratacao é o registro de contratação de uma oferta: liga comprador,
// prestador e oferta e carrega o valor acordado e o período de serviço.
type Contratacao struct {
	gorm.Model
	CompradorID   uint    `gorm:"not null;index" json:"compradorId"`
	PrestadorID   uint    `gorm:"not null;index" json:"prestadorId"`
	OfertaID      uint    `gorm:"not null;index" json:"ofertaId"`
	Status        string  `gorm:"size:50;not null" json:"status"`
	ValorAcordado float64 `gorm:"not null" json:"valorAcordado"`
	Condicoes     string  `json:"condicoes"`

	InicioServico *time.Time `json:"inicioServico,omitempty"`
	FimServico    *time.Time `json:"fimServico,omitempty"`
}

// StatusAtivo diz se o status ainda prende os participantes (bloqueia, por
// exemplo, a exclusão da conta do usuário).
func StatusAtivo(status string) bool {
	switch status {
	case StatusPendente, StatusAceita, StatusEmAndamento, StatusEmDisputa:
		return true
	}
	return false
}

// Terminal diz se o status encerra o ciclo de vida.
func Terminal(status string) bool {
	switch status {
	case StatusConcluida, StatusRecusada, StatusCanceladaPeloComprador, StatusCanceladaPeloPrestador:
		return true
	}
	return false
}
