// internal/avaliacao/repository.go
package avaliacao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de avaliações.
type Repository interface {
	Criar(a *Avaliacao) error
	BuscarPorID(id uint) (*Avaliacao, error)
	Existe(autorID, receptorID, contratacaoID uint) (bool, error)
	AtualizarNotaComentario(id uint, nota int, comentario string) error
	ListarPorReceptor(receptorID uint) ([]Avaliacao, error)
	MediaPorReceptor(receptorID uint) (float64, int64, error)
}

type repositoryImpl struct {
	DB *gorm.DB
}

// NewRepository instancia o repositório sobre o banco dado.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) Criar(a *Avaliacao) error {
	return r.DB.Create(a).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Avaliacao, error) {
	var a Avaliacao
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Existe(autorID, receptorID, contratacaoID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&Avaliacao{}).
		Where("autor_id = ? AND receptor_id = ? AND contratacao_id = ?", autorID, receptorID, contratacaoID).
		Count(&total).Error
	return total > 0, err
}

func (r *repositoryImpl) AtualizarNotaComentario(id uint, nota int, comentario string) error {
	return r.DB.Model(&Avaliacao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nota":       nota,
		"comentario": comentario,
	}).Error
}

func (r *repositoryImpl) ListarPorReceptor(receptorID uint) ([]Avaliacao, error) {
	var list []Avaliacao
	err := r.DB.
		Where("receptor_id = ?", receptorID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) MediaPorReceptor(receptorID uint) (float64, int64, error) {
	var total int64
	if err := r.DB.Model(&Avaliacao{}).Where("receptor_id = ?", receptorID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	var media float64
	err := r.DB.Model(&Avaliacao{}).
		Where("receptor_id = ?", receptorID).
		Select("COALESCE(AVG(nota), 0)").
		Scan(&media).Error
	return media, total, err
}
