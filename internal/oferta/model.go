package oferta

import "gorm.io/gorm"

// Oferta é um serviço publicado por um prestador no catálogo.
type Oferta struct {
	gorm.Model
	PrestadorID uint    `gorm:"not null;index" json:"prestadorId"`
	Titulo      string  `gorm:"size:200;not null" json:"titulo"`
	Descricao   string  `gorm:"type:text" json:"descricao"`
	Valor       float64 `gorm:"not null" json:"valor"`
	Ativa       bool    `gorm:"not null;default:true" json:"ativa"`
}
