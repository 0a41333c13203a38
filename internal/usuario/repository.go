package usuario

import "gorm.io/gorm"

type Repository interface {
	Salvar(u *Usuario) error
	BuscarPorID(id uint) (*Usuario, error)
	BuscarPorEmail(email string) (*Usuario, error)
	ListarTodos() ([]Usuario, error)
	Deletar(id uint) error
}

type repositoryImpl struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) Salvar(u *Usuario) error {
	return r.DB.Save(u).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos() ([]Usuario, error) {
	var usuarios []Usuario
	err := r.DB.Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Deletar(id uint) error {
	return r.DB.Delete(&Usuario{}, id).Error
}
