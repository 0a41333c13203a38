package contratacao

import "time"

// ResumoContratacaoDTO é a visão de painel de uma contratação.
type ResumoContratacaoDTO struct {
	ID            uint      `json:"id"`
	OfertaID      uint      `json:"ofertaId"`
	Status        string    `json:"status"`
	ValorAcordado float64   `json:"valorAcordado"`
	Papel         string    `json:"papel"` // papel do usuário nesta contratação
	CriadaEm      time.Time `json:"criadaEm"`
}

func paraResumo(c Contratacao, usuarioID uint) ResumoContratacaoDTO {
	papel := PapelComprador
	if c.PrestadorID == usuarioID {
		papel = PapelPrestador
	}
	return ResumoContratacaoDTO{
		ID:            c.ID,
		OfertaID:      c.OfertaID,
		Status:        c.Status,
		ValorAcordado: c.ValorAcordado,
		Papel:         papel,
		CriadaEm:      c.CreatedAt,
	}
}

func paraResumos(list []Contratacao, usuarioID uint) []ResumoContratacaoDTO {
	out := make([]ResumoContratacaoDTO, 0, len(list))
	for _, c := range list {
		out = append(out, paraResumo(c, usuarioID))
	}
	return out
}
