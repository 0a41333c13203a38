// internal/contratacao/maquina.go
package contratacao

import "github.com/ConectaServicos/api-marketplace/internal/auth"

// Papel do ator em relação a uma contratação específica. É o papel relativo
// (dono do lado comprador ou prestador daquela contratação), não o perfil
// global do usuário.
const (
	PapelComprador = "comprador"
	PapelPrestador = "prestador"
	PapelAdmin     = "admin"
)

type transicao struct {
	de    string
	papel string
	para  string
}

// Tabela de transições permitidas. Qualquer tupla fora dela é recusada com
// TransicaoInvalida.
var transicoesPermitidas = map[transicao]struct{}{
	// decisão do prestador sobre o pedido
	{StatusPendente, PapelPrestador, StatusAceita}:   {},
	{StatusPendente, PapelPrestador, StatusRecusada}: {},
	// o comprador pode desistir antes do aceite
	{StatusPendente, PapelComprador, StatusCanceladaPeloComprador}: {},
	// início do trabalho
	{StatusAceita, PapelPrestador, StatusEmAndamento}: {},
	// cancelamento após o aceite, cada lado cancela como si mesmo
	{StatusAceita, PapelComprador, StatusCanceladaPeloComprador}: {},
	{StatusAceita, PapelPrestador, StatusCanceladaPeloPrestador}: {},
	// entrega
	{StatusEmAndamento, PapelPrestador, StatusConcluida}: {},
	// qualquer lado pode escalar
	{StatusEmAndamento, PapelComprador, StatusEmDisputa}: {},
	{StatusEmAndamento, PapelPrestador, StatusEmDisputa}: {},
	// resolução de disputa é exclusiva do admin
	{StatusEmDisputa, PapelAdmin, StatusConcluida}:              {},
	{StatusEmDisputa, PapelAdmin, StatusCanceladaPeloComprador}: {},
	{StatusEmDisputa, PapelAdmin, StatusCanceladaPeloPrestador}: {},
}

// TransicaoPermitida consulta a tabela para a tupla (status atual, papel,
// status pedido).
func TransicaoPermitida(de, papel, para string) bool {
	_, ok := transicoesPermitidas[transicao{de: de, papel: papel, para: para}]
	return ok
}

// PapelDoAtor resolve o papel do ator nesta contratação. Retorna "" quando o
// ator não é comprador, prestador nem admin.
func PapelDoAtor(c *Contratacao, ator auth.Ator) string {
	if ator.Admin() {
		return PapelAdmin
	}
	switch ator.ID {
	case c.CompradorID:
		return PapelComprador
	case c.PrestadorID:
		return PapelPrestador
	}
	return ""
}
