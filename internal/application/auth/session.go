// Package auth mantiene la sesión del usuario autenticado y notifica los cambios de dueño.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/foundry-erp/internal/domain"
)

// Owner identidad autenticada a la que pertenecen todas las filas.
type Owner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier valida un access token y devuelve su dueño.
type Verifier interface {
	Verify(ctx context.Context, token string) (Owner, error)
}

// Session dueño actual más suscriptores a sus cambios. Un único dueño a la vez.
type Session struct {
	verifier Verifier
	log      zerolog.Logger

	mu        sync.RWMutex
	owner     *Owner
	listeners map[int]func(ctx context.Context, ownerID string)
	nextID    int
}

// NewSession construye una sesión sin dueño.
func NewSession(verifier Verifier, log zerolog.Logger) *Session {
	return &Session{verifier: verifier, log: log, listeners: make(map[int]func(ctx context.Context, ownerID string))}
}

// SignIn valida el token y establece el dueño. Si el dueño cambia, notifica a los suscriptores
// antes de retornar.
func (s *Session) SignIn(ctx context.Context, token string) (Owner, error) {
	if token == "" {
		return Owner{}, domain.ErrUnauthorized
	}
	owner, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rechazado")
		return Owner{}, errors.Join(domain.ErrUnauthorized, err)
	}

	s.mu.Lock()
	changed := s.owner == nil || s.owner.ID != owner.ID
	s.owner = &owner
	s.mu.Unlock()

	if changed {
		s.log.Info().Str("owner_id", owner.ID).Msg("sesión iniciada")
		s.notify(ctx, owner.ID)
	}
	return owner, nil
}

// SignOut cierra la sesión. Sin dueño previo no notifica.
func (s *Session) SignOut(ctx context.Context) {
	s.mu.Lock()
	had := s.owner != nil
	s.owner = nil
	s.mu.Unlock()

	if had {
		s.log.Info().Msg("sesión cerrada")
		s.notify(ctx, "")
	}
}

// Owner devuelve el dueño actual.
func (s *Session) Owner() (Owner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.owner == nil {
		return Owner{}, false
	}
	return *s.owner, true
}

// OwnerID id del dueño actual.
func (s *Session) OwnerID() (string, bool) {
	o, ok := s.Owner()
	return o.ID, ok
}

// Subscribe registra fn y devuelve la función para darla de baja. fn recibe "" al cerrar sesión.
func (s *Session) Subscribe(fn func(ctx context.Context, ownerID string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify(ctx context.Context, ownerID string) {
	s.mu.RLock()
	fns := make([]func(context.Context, string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, ownerID)
	}
}
