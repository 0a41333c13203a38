package usuario

import "gorm.io/gorm"

// Usuario é a conta da plataforma. Perfil define o que o usuário pode fazer:
// compradores contratam, prestadores publicam ofertas, anunciantes publicam
// anúncios e admins resolvem disputas e moderam.
type Usuario struct {
	gorm.Model
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"-"`
	Perfil    string `gorm:"size:20;not null" json:"perfil"`
}

// Resumo é a visão que os outros módulos têm de um usuário.
type Resumo struct {
	ID     uint   `json:"id"`
	Nome   string `json:"nome"`
	Perfil string `json:"perfil"`
}
