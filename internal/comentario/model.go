package comentario

import "time"

// Status de moderação de um comentário.
const (
	StatusAprovado        = "aprovado"
	StatusOcultoPeloAdmin = "oculto-pelo-admin"
)

// Limites de tamanho do conteúdo.
const (
	ConteudoMin = 1
	ConteudoMax = 2000
)

// Comentario é um comentário em uma publicação. A thread tem no máximo dois
// níveis: comentários de topo (ParentID nulo) e respostas diretas (ParentID
// aponta para um comentário de topo). Respostas não têm respostas.
//
// Não há DeletedAt de propósito: a remoção pelo autor é física e em cascata,
// junto com o ajuste do contador da publicação. Ocultar é outra coisa —
// moderação via Status, sem apagar a linha.
type Comentario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PublicacaoID  uint   `gorm:"not null;index" json:"publicacaoId"`
	AutorID       uint   `gorm:"not null;index" json:"autorId"`
	ParentID      *uint  `gorm:"index" json:"parentId,omitempty"`
	Conteudo      string `gorm:"type:text;not null" json:"conteudo"`
	Status        string `gorm:"size:50;not null;default:aprovado" json:"status"`
	TotalCurtidas int64  `gorm:"not null;default:0" json:"totalCurtidas"`
}

// Curtida registra o "gostei" de um usuário em um comentário.
type Curtida struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ComentarioID uint `gorm:"not null;uniqueIndex:idx_curtida_unica" json:"comentarioId"`
	UsuarioID    uint `gorm:"not null;uniqueIndex:idx_curtida_unica" json:"usuarioId"`
}
