package model

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID    string    `json:"id,omitempty"`
	Texto string    `json:"texto"`
	Fecha time.Time `json:"fecha,omitempty"`
	Leido bool      `json:"leido"`
}

// GenerateID genera un nuevo UUID para la notificación si todavía no tiene uno
func (n *Notification) GenerateID() {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
}
