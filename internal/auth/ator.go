package auth

import "context"

// Perfis de usuário aceitos pela plataforma.
const (
	PerfilComprador  = "comprador"
	PerfilPrestador  = "prestador"
	PerfilAnunciante = "anunciante"
	PerfilAdmin      = "admin"
)

// Ator identifica quem está executando a operação. Os serviços recebem o
// Ator como parâmetro explícito; nenhuma camada abaixo do handler lê o
// contexto da requisição.
type Ator struct {
	ID     uint
	Perfil string
}

// Admin informa se o ator tem poderes administrativos.
func (a Ator) Admin() bool { return a.Perfil == PerfilAdmin }

// AtorDoContexto monta o Ator a partir dos valores que o middleware de
// autenticação colocou no contexto.
func AtorDoContexto(ctx context.Context) (Ator, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	if !ok {
		return Ator{}, false
	}
	perfil, _ := ctx.Value(CtxPerfil).(string)
	return Ator{ID: id, Perfil: perfil}, true
}
