package repository

import (
	"context"
	"errors"
	"time"

	"github.com/icami12/ControlCash/internal/model"
)

// ErrProfileNotFound indica que no existe un perfil para el chat o código
var ErrProfileNotFound = errors.New("perfil no encontrado")

type Repository interface {
	// Transacciones
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)

	// Perfiles
	GetProfileByChatID(ctx context.Context, chatID int64) (*model.Profile, error)
	GetProfileByCode(ctx context.Context, code string) (*model.Profile, error)
	SaveProfile(ctx context.Context, perfil *model.Profile) error

	// Notificaciones
	CreateNotification(ctx context.Context, notification *model.Notification) error
}

type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Tipo      string // "ingreso" o "gasto"
	Limit     int
}
