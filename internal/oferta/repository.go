package oferta

import "gorm.io/gorm"

type Repository interface {
	Criar(o *Oferta) error
	BuscarPorID(id uint) (*Oferta, error)
	ListarAtivas(limite, deslocamento int) ([]Oferta, error)
	ListarPorPrestador(prestadorID uint) ([]Oferta, error)
	Atualizar(o *Oferta) error
}

type repositoryImpl struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) Criar(o *Oferta) error {
	return r.DB.Create(o).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Oferta, error) {
	var o Oferta
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repositoryImpl) ListarAtivas(limite, deslocamento int) ([]Oferta, error) {
	var list []Oferta
	err := r.DB.
		Where("ativa = ?", true).
		Order("created_at DESC").
		Limit(limite).
		Offset(deslocamento).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorPrestador(prestadorID uint) ([]Oferta, error) {
	var list []Oferta
	err := r.DB.Where("prestador_id = ?", prestadorID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(o *Oferta) error {
	return r.DB.Save(o).Error
}
