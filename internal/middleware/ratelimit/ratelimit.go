// internal/middleware/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter mantém um token-bucket por cliente (IP), com limpeza das entradas
// ociosas.
type Limiter struct {
	mu       sync.Mutex
	entradas map[string]*entrada
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

type entrada struct {
	lim       *rate.Limiter
	ultimoUso time.Time
}

// New cria o limitador com rps tokens por segundo e capacidade burst.
func New(rps float64, burst int) *Limiter {
	l := &Limiter{
		entradas: make(map[string]*entrada),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  15 * time.Minute,
	}
	go l.limpezaPeriodica(2 * time.Minute)
	return l
}

func (l *Limiter) permitir(chave string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entradas[chave]
	if !ok {
		e = &entrada{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entradas[chave] = e
	}
	e.ultimoUso = time.Now()
	return e.lim.Allow()
}

func (l *Limiter) limpezaPeriodica(cada time.Duration) {
	for range time.Tick(cada) {
		corte := time.Now().Add(-l.idleTTL)
		l.mu.Lock()
		for chave, e := range l.entradas {
			if e.ultimoUso.Before(corte) {
				delete(l.entradas, chave)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware aplica o limite por IP de origem e responde 429 quando estoura.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.permitir(chaveDoCliente(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func chaveDoCliente(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "desconhecido"
}
