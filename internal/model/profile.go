package model

import "time"

// Profile vincula una cuenta de ControlCash con un chat de Telegram y
// guarda el estado anti-abuso del usuario
type Profile struct {
	ID             string     `json:"id,omitempty"`
	Username       string     `json:"username"`
	TelegramCode   string     `json:"telegram_code,omitempty"`
	TelegramChatID int64      `json:"telegram_chat_id,omitempty"`
	Strikes        int        `json:"strikes_no_transaccion"`
	LockedUntil    *time.Time `json:"bloqueo_ia_hasta,omitempty"`
}
