// internal/oferta/catalogo.go
package oferta

import (
	"errors"

	"github.com/ConectaServicos/api-marketplace/internal/contratacao"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"gorm.io/gorm"
)

// Catalogo implementa o contrato de catálogo consumido pelas contratações:
// resolve uma oferta ativa para (dono, preço).
type Catalogo struct {
	Repo Repository
}

// NovoCatalogo cria o resolvedor de ofertas.
func NovoCatalogo(repo Repository) *Catalogo {
	return &Catalogo{Repo: repo}
}

func (c *Catalogo) ResolverOferta(id uint) (*contratacao.OfertaResumo, error) {
	o, err := c.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("oferta não encontrada")
		}
		return nil, erros.Interno(err)
	}
	if !o.Ativa {
		return nil, erros.NaoEncontrado("oferta não está mais disponível")
	}
	return &contratacao.OfertaResumo{
		ID:          o.ID,
		PrestadorID: o.PrestadorID,
		Valor:       o.Valor,
	}, nil
}
