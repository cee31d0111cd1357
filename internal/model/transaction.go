package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de transacción soportados
const (
	TipoIngreso = "ingreso"
	TipoGasto   = "gasto"
)

type Transaction struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"usuario_id"`
	Tipo        string    `json:"tipo"` // "ingreso" o "gasto"
	Cantidad    float64   `json:"cantidad"`
	Descripcion string    `json:"descripcion"`
	Categoria   string    `json:"categoria"`
	Destino     string    `json:"destino,omitempty"`
	Fecha       time.Time `json:"fecha"`
	CreatedAt   time.Time `json:"fecha_creacion,omitempty"`
}

// GenerateID genera un nuevo UUID para la transacción si todavía no tiene uno
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// EsTipoValido indica si el tipo pertenece al conjunto permitido
func EsTipoValido(tipo string) bool {
	return tipo == TipoIngreso || tipo == TipoGasto
}

// Signed devuelve la cantidad con signo: positiva para ingresos,
// negativa para gastos
func (t *Transaction) Signed() float64 {
	if t.Tipo == TipoGasto {
		return -t.Cantidad
	}
	return t.Cantidad
}
