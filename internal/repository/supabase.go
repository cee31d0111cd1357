package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/icami12/ControlCash/internal/model"
)

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	data, _, err := r.client.From("transacciones").Insert(transaction, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Parseamos la respuesta para recuperar el ID y la fecha de creación
	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) > 0 {
		transaction.ID = created[0].ID
		transaction.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From("transacciones").
		Select("*", "", false).
		Eq("usuario_id", userID)

	if filter.StartDate != nil {
		query = query.Gte("fecha", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		query = query.Lte("fecha", filter.EndDate.Format(time.RFC3339))
	}
	if filter.Tipo != "" {
		query = query.Eq("tipo", filter.Tipo)
	}

	// Primero las más recientes
	query = query.Order("fecha.desc", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) GetProfileByChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	return r.getProfile("telegram_chat_id", strconv.FormatInt(chatID, 10))
}

func (r *SupabaseRepository) GetProfileByCode(ctx context.Context, code string) (*model.Profile, error) {
	return r.getProfile("telegram_code", code)
}

func (r *SupabaseRepository) getProfile(column, value string) (*model.Profile, error) {
	data, _, err := r.client.From("perfiles").
		Select("*", "", false).
		Eq(column, value).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profiles []model.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}
	return &profiles[0], nil
}

func (r *SupabaseRepository) SaveProfile(ctx context.Context, perfil *model.Profile) error {
	// Un map en vez del struct: los campos limpiados (código usado, bloqueo
	// vencido) tienen que llegar como null
	update := map[string]interface{}{
		"telegram_code":          perfil.TelegramCode,
		"telegram_chat_id":       perfil.TelegramChatID,
		"strikes_no_transaccion": perfil.Strikes,
		"bloqueo_ia_hasta":       perfil.LockedUntil,
	}

	_, _, err := r.client.From("perfiles").
		Update(update, "", "").
		Eq("id", perfil.ID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateNotification(ctx context.Context, notification *model.Notification) error {
	notification.GenerateID()
	_, _, err := r.client.From("notificaciones").Insert(notification, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
