package avaliacao

import "gorm.io/gorm"

// Avaliacao é a nota que um participante deixa sobre o outro depois que a
// contratação foi concluída. O índice único garante no banco a regra de uma
// avaliação por (autor, receptor, contratação); o serviço ainda pré-checa
// para devolver um Conflito legível.
type Avaliacao struct {
	gorm.Model
	ContratacaoID uint   `gorm:"not null;uniqueIndex:idx_avaliacao_unica" json:"contratacaoId"`
	AutorID       uint   `gorm:"not null;uniqueIndex:idx_avaliacao_unica" json:"autorId"`
	ReceptorID    uint   `gorm:"not null;uniqueIndex:idx_avaliacao_unica;index" json:"receptorId"`
	Nota          int    `gorm:"not null;check:nota >= 1 AND nota <= 5" json:"nota"`
	Comentario    string `json:"comentario"`
}

// NotaValida confere o intervalo aceito.
func NotaValida(nota int) bool { return nota >= 1 && nota <= 5 }
