package publicacao

import "gorm.io/gorm"

// Repository encapsula o acesso a dados de publicações.
type Repository interface {
	Criar(p *Publicacao) error
	BuscarPorID(id uint) (*Publicacao, error)
	Listar(limite, deslocamento int) ([]Publicacao, error)
	AtualizarStatus(id uint, status string) error
}

type repositoryImpl struct {
	DB *gorm.DB
}

// NewRepository instancia o repositório sobre o banco dado.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) Criar(p *Publicacao) error {
	return r.DB.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Publicacao, error) {
	var p Publicacao
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Listar(limite, deslocamento int) ([]Publicacao, error) {
	var list []Publicacao
	err := r.DB.
		Order("created_at DESC").
		Limit(limite).
		Offset(deslocamento).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AtualizarStatus(id uint, status string) error {
	return r.DB.Model(&Publicacao{}).Where("id = ?", id).Update("status", status).Error
}
