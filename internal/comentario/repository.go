// internal/comentario/repository.go
package comentario

import (
	"fmt"

	"github.com/ConectaServicos/api-marketplace/internal/publicacao"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de comentários e curtidas. As
// operações que tocam o contador da publicação são transacionais: ou tudo
// persiste, ou nada.
type Repository interface {
	// CriarComContador insere o comentário e incrementa o contador da
	// publicação na mesma transação.
	CriarComContador(c *Comentario) error
	// RemoverCascata apaga o comentário e, se for de topo, todas as
	// respostas diretas; remove as curtidas das linhas apagadas e decrementa
	// o contador da publicação pelo número exato de linhas removidas. Tudo em
	// uma transação. Retorna quantas linhas de comentário saíram.
	RemoverCascata(c *Comentario) (int64, error)
	BuscarPorID(id uint) (*Comentario, error)
	AtualizarConteudo(id uint, conteudo string) error
	AtualizarStatus(id uint, status string) error
	ListarTopo(publicacaoID uint, incluirOcultos bool, limite, deslocamento int) ([]Comentario, error)
	ListarRespostas(parentID uint, incluirOcultos bool) ([]Comentario, error)
	// Curtir insere a curtida e incrementa TotalCurtidas na mesma transação.
	Curtir(comentarioID, usuarioID uint) error
	// Descurtir remove a curtida, se existir, e decrementa o contador.
	Descurtir(comentarioID, usuarioID uint) (bool, error)
}

type repositoryImpl struct {
	DB *gorm.DB
}

// NewRepository instancia o repositório sobre o banco dado.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) CriarComContador(c *Comentario) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		res := tx.Model(&publicacao.Publicacao{}).
			Where("id = ?", c.PublicacaoID).
			Update("total_comentarios", gorm.Expr("total_comentarios + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// publicação sumiu entre a checagem e o insert; desfaz o insert
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repositoryImpl) RemoverCascata(c *Comentario) (int64, error) {
	var removidos int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		ids := []uint{c.ID}
		if c.ParentID == nil {
			// profundidade máxima é 1: basta coletar as respostas diretas,
			// sem caminhada recursiva
			var respostas []uint
			if err := tx.Model(&Comentario{}).
				Where("parent_id = ?", c.ID).
				Pluck("id", &respostas).Error; err != nil {
				return err
			}
			ids = append(ids, respostas...)
		}

		res := tx.Where("id IN ?", ids).Delete(&Comentario{})
		if res.Error != nil {
			return res.Error
		}
		removidos = res.RowsAffected

		if err := tx.Where("comentario_id IN ?", ids).Delete(&Curtida{}).Error; err != nil {
			return err
		}

		// decrementa pelo total de linhas removidas, nunca por 1 fixo
		res = tx.Model(&publicacao.Publicacao{}).
			Where("id = ? AND total_comentarios >= ?", c.PublicacaoID, removidos).
			Update("total_comentarios", gorm.Expr("total_comentarios - ?", removidos))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("contador da publicação %d não pôde ser ajustado", c.PublicacaoID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removidos, nil
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Comentario, error) {
	var c Comentario
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) AtualizarConteudo(id uint, conteudo string) error {
	return r.DB.Model(&Comentario{}).Where("id = ?", id).Update("conteudo", conteudo).Error
}

func (r *repositoryImpl) AtualizarStatus(id uint, status string) error {
	return r.DB.Model(&Comentario{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repositoryImpl) ListarTopo(publicacaoID uint, incluirOcultos bool, limite, deslocamento int) ([]Comentario, error) {
	q := r.DB.Where("publicacao_id = ? AND parent_id IS NULL", publicacaoID)
	if !incluirOcultos {
		q = q.Where("status = ?", StatusAprovado)
	}
	var list []Comentario
	err := q.
		Order("created_at ASC").
		Limit(limite).
		Offset(deslocamento).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarRespostas(parentID uint, incluirOcultos bool) ([]Comentario, error) {
	q := r.DB.Where("parent_id = ?", parentID)
	if !incluirOcultos {
		q = q.Where("status = ?", StatusAprovado)
	}
	var list []Comentario
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Curtir(comentarioID, usuarioID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&Curtida{ComentarioID: comentarioID, UsuarioID: usuarioID}).Error; err != nil {
			return err
		}
		return tx.Model(&Comentario{}).
			Where("id = ?", comentarioID).
			Update("total_curtidas", gorm.Expr("total_curtidas + 1")).Error
	})
}

func (r *repositoryImpl) Descurtir(comentarioID, usuarioID uint) (bool, error) {
	var removeu bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comentario_id = ? AND usuario_id = ?", comentarioID, usuarioID).Delete(&Curtida{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removeu = true
		return tx.Model(&Comentario{}).
			Where("id = ?", comentarioID).
			Update("total_curtidas", gorm.Expr("total_curtidas - 1")).Error
	})
	return removeu, err
}
