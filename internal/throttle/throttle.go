package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/icami12/ControlCash/internal/model"
)

// Repository persiste el estado anti-abuso del perfil
type Repository interface {
	SaveProfile(ctx context.Context, perfil *model.Profile) error
}

// Throttle limita el acceso al procesamiento caro: acumula strikes por cada
// mensaje no interpretable y bloquea al usuario un rato al llegar al máximo
type Throttle struct {
	repo         Repository
	maxStrikes   int
	lockDuration time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex // serializa transiciones por usuario
}

func New(repo Repository, maxStrikes int, lockDuration time.Duration) *Throttle {
	return &Throttle{
		repo:         repo,
		maxStrikes:   maxStrikes,
		lockDuration: lockDuration,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (t *Throttle) userLock(id string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[id]
	if !ok {
		l = &sync.Mutex{}
		t.locks[id] = l
	}
	return l
}

// IsLocked indica si el perfil tiene un bloqueo vigente. Un bloqueo vencido
// cuenta como desbloqueado; los campos se limpian recién en la próxima
// transición.
func (t *Throttle) IsLocked(perfil *model.Profile, now time.Time) bool {
	return perfil.LockedUntil != nil && now.Before(*perfil.LockedUntil)
}

// RegisterFailure suma un strike. Al llegar al máximo activa el bloqueo y
// reinicia el contador.
func (t *Throttle) RegisterFailure(ctx context.Context, perfil *model.Profile, now time.Time) error {
	l := t.userLock(perfil.ID)
	l.Lock()
	defer l.Unlock()

	perfil.Strikes++
	if perfil.Strikes >= t.maxStrikes {
		hasta := now.Add(t.lockDuration)
		perfil.LockedUntil = &hasta
		perfil.Strikes = 0
	}

	return t.repo.SaveProfile(ctx, perfil)
}

// RegisterSuccess limpia strikes y bloqueo desde cualquier estado
func (t *Throttle) RegisterSuccess(ctx context.Context, perfil *model.Profile) error {
	l := t.userLock(perfil.ID)
	l.Lock()
	defer l.Unlock()

	perfil.Strikes = 0
	perfil.LockedUntil = nil

	return t.repo.SaveProfile(ctx, perfil)
}
