package negociacao

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status da negociação.
const (
	StatusAberta         = "aberta"
	StatusContraproposta = "contraproposta"
	StatusAceita         = "aceita"
	StatusRecusada       = "recusada"
)

// Proposta é um lance dentro da negociação. A lista inteira vive em JSONB na
// própria linha da negociação.
type Proposta struct {
	Papel     string    `json:"papel"` // comprador | prestador
	Valor     float64   `json:"valor"`
	Condicoes string    `json:"condicoes"`
	CriadaEm  time.Time `json:"criadaEm"`
}

// Negociacao é a troca de propostas e contrapropostas atrelada a uma
// contratação pendente. UltimoProponente guarda de quem foi o último lance;
// a alternância de turnos é verificada contra ele no momento da escrita.
type Negociacao struct {
	gorm.Model
	ContratacaoID    uint   `gorm:"not null;index" json:"contratacaoId"`
	Status           string `gorm:"size:50;not null" json:"status"`
	UltimoProponente string `gorm:"size:20;not null" json:"ultimoProponente"`

	Propostas datatypes.JSONSlice[Proposta] `json:"propostas"`
}

// Aberta diz se a negociação ainda aceita lances.
func Aberta(status string) bool {
	return status == StatusAberta || status == StatusContraproposta
}

// UltimaProposta devolve o lance mais recente.
func (n *Negociacao) UltimaProposta() (Proposta, bool) {
	if len(n.Propostas) == 0 {
		return Proposta{}, false
	}
	return n.Propostas[len(n.Propostas)-1], true
}
