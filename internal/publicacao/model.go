package publicacao

import "gorm.io/gorm"

// Status de uma publicação.
const (
	StatusAtiva     = "ativa"
	StatusArquivada = "arquivada"
)

// Publicacao é um post da comunidade que recebe comentários encadeados.
// TotalComentarios é desnormalizado e mantido pelas transações do pacote
// comentario: sempre igual à contagem de comentários não apagados.
type Publicacao struct {
	gorm.Model
	AutorID          uint   `gorm:"not null;index" json:"autorId"`
	Titulo           string `gorm:"size:200;not null" json:"titulo"`
	Conteudo         string `gorm:"type:text" json:"conteudo"`
	Status           string `gorm:"size:50;not null;default:ativa" json:"status"`
	TotalComentarios int64  `gorm:"not null;default:0" json:"totalComentarios"`
}

// Comentavel diz se a publicação aceita novos comentários.
func (p *Publicacao) Comentavel() bool { return p.Status == StatusAtiva }
