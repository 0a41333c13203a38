package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewareAutenticacao(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	var ator Ator
	var ok bool
	protegido := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ator, ok = AtorDoContexto(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// sem token
	rec := httptest.NewRecorder()
	protegido.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contratacoes", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sem token: status = %d, quer 401", rec.Code)
	}

	// token inválido
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contratacoes", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	protegido.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("token inválido: status = %d, quer 401", rec.Code)
	}

	// token válido popula o contexto
	token, err := GerarToken(42, PerfilPrestador)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/contratacoes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protegido.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("token válido: status = %d, quer 200", rec.Code)
	}
	if !ok || ator.ID != 42 || ator.Perfil != PerfilPrestador {
		t.Errorf("ator = %+v (ok=%v)", ator, ok)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	rota := MiddlewareAutenticacao(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tokenComum, _ := GerarToken(1, PerfilComprador)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set("Authorization", "Bearer "+tokenComum)
	rota.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("perfil comum: status = %d, quer 403", rec.Code)
	}

	tokenAdmin, _ := GerarToken(9, PerfilAdmin)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set("Authorization", "Bearer "+tokenAdmin)
	rota.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: status = %d, quer 200", rec.Code)
	}
}

func TestValidarTokenRejeitaOutroSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(1, PerfilComprador)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}
	claims, err := ValidarToken(token)
	if err != nil {
		t.Fatalf("ValidarToken: %v", err)
	}
	if claims.UserID != 1 || claims.Perfil != PerfilComprador || claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidarToken(token + "x"); err == nil {
		t.Error("token adulterado deveria ser rejeitado")
	}
}
