package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/icami12/ControlCash/internal/inference"
	"github.com/icami12/ControlCash/internal/model"
	"github.com/icami12/ControlCash/internal/parser"
	"github.com/icami12/ControlCash/internal/repository"
	"github.com/icami12/ControlCash/internal/throttle"
)

// Estado del procesamiento de un mensaje
type Estado int

const (
	EstadoRegistrada Estado = iota
	EstadoNecesitaConfirmacion
	EstadoRechazada
)

// Motivos de rechazo
const (
	MotivoBloqueado       = "locked"
	MotivoNoParseable     = "unparseable"
	MotivoNoTransaccion   = "not_a_transaction"
	MotivoCamposFaltantes = "missing_fields"
	MotivoTipoInvalido    = "invalid_type"
	MotivoMontoInvalido   = "invalid_amount"
	MotivoStorage         = "storage_error"
)

// Resultado es el desenlace de procesar un mensaje. En
// EstadoNecesitaConfirmacion la transacción viene armada pero sin persistir,
// lista para registrarse si el usuario confirma.
type Resultado struct {
	Estado      Estado
	Motivo      string
	Transaccion *model.Transaction
	Candidato   *inference.Candidate
}

// Inferencer es el colaborador de extracción por modelo externo
type Inferencer interface {
	Infer(ctx context.Context, text string) (*inference.Candidate, error)
}

// Repository define lo que el servicio necesita del almacenamiento
type Repository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string, filter repository.TransactionFilter) ([]model.Transaction, error)
	GetProfileByChatID(ctx context.Context, chatID int64) (*model.Profile, error)
	GetProfileByCode(ctx context.Context, code string) (*model.Profile, error)
	SaveProfile(ctx context.Context, perfil *model.Profile) error
	CreateNotification(ctx context.Context, notification *model.Notification) error
}

// Processor convierte mensajes de chat en transacciones: combina los parsers
// heurísticos locales con el modelo externo, valida el candidato y decide si
// registrar, pedir confirmación o rechazar
type Processor struct {
	repo     Repository
	modelo   Inferencer
	throttle *throttle.Throttle
	umbral   float64
	now      func() time.Time
}

func NewProcessor(repo Repository, modelo Inferencer, th *throttle.Throttle, umbralConfianza float64) *Processor {
	return &Processor{
		repo:     repo,
		modelo:   modelo,
		throttle: th,
		umbral:   umbralConfianza,
		now:      time.Now,
	}
}

// Process procesa un mensaje de un usuario vinculado.
//
// El flujo: compuerta de bloqueo, llamada al modelo, validación del candidato
// (cada falla suma un strike), fusión con las heurísticas locales y compuerta
// de confianza. Un candidato válido pero dudoso pide confirmación sin tocar
// el estado de strikes.
func (s *Processor) Process(ctx context.Context, perfil *model.Profile, texto string) (*Resultado, error) {
	ahora := s.now()

	// Usuario bloqueado: no gastamos el modelo ni cambiamos strikes
	if s.throttle.IsLocked(perfil, ahora) {
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoBloqueado}, nil
	}

	cand, err := s.modelo.Infer(ctx, texto)
	if err != nil || cand == nil {
		if err != nil {
			log.Printf("inferencia falló: %v", err)
		}
		s.strike(ctx, perfil, ahora)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoNoParseable}, nil
	}

	// Intenciones futuras o hipotéticas no se registran
	if !cand.EsTransaccion {
		s.strike(ctx, perfil, ahora)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoNoTransaccion}, nil
	}

	if cand.Tipo == "" || cand.Monto == "" {
		s.strike(ctx, perfil, ahora)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoCamposFaltantes}, nil
	}

	if !model.EsTipoValido(cand.Tipo) {
		s.strike(ctx, perfil, ahora)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoTipoInvalido}, nil
	}

	monto, err := parseMonto(cand.Monto)
	if err != nil {
		s.strike(ctx, perfil, ahora)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoMontoInvalido}, nil
	}

	// Fusión: las heurísticas locales pisan al modelo cuando encuentran algo;
	// el modelo completa lo que las regex no alcanzan
	if m, ok := parser.ResolveAmount(texto); ok {
		monto = m
	}

	categoria := cand.Categoria
	if !model.EsCategoriaValida(categoria) {
		// Fuera del conjunto fijo → clasificador local, que cae en "Otros"
		categoria = parser.ClassifyCategory(texto)
	}

	destino := cand.Destino
	if d, ok := parser.ResolveDestination(texto); ok {
		destino = d
	}

	fecha := parser.ResolveDate(texto, cand.Fecha, ahora)

	trans := &model.Transaction{
		UserID:      perfil.ID,
		Tipo:        cand.Tipo,
		Cantidad:    monto,
		Descripcion: texto,
		Categoria:   categoria,
		Destino:     destino,
		Fecha:       fecha,
	}

	// Válido pero dudoso: pedimos confirmación, sin strikes ni persistencia
	if cand.Confianza < s.umbral {
		return &Resultado{
			Estado:      EstadoNecesitaConfirmacion,
			Transaccion: trans,
			Candidato:   cand,
		}, nil
	}

	if err := s.throttle.RegisterSuccess(ctx, perfil); err != nil {
		log.Printf("no se pudo limpiar el estado anti-abuso: %v", err)
	}

	trans.GenerateID()
	if err := s.repo.CreateTransaction(ctx, trans); err != nil {
		log.Printf("no se pudo guardar la transacción: %v", err)
		return &Resultado{Estado: EstadoRechazada, Motivo: MotivoStorage}, nil
	}

	s.notificar(ctx, trans)

	return &Resultado{Estado: EstadoRegistrada, Transaccion: trans, Candidato: cand}, nil
}

// RecordConfirmed registra una transacción que el usuario confirmó
// explícitamente tras una extracción dudosa
func (s *Processor) RecordConfirmed(ctx context.Context, perfil *model.Profile, trans *model.Transaction) error {
	if err := s.throttle.RegisterSuccess(ctx, perfil); err != nil {
		log.Printf("no se pudo limpiar el estado anti-abuso: %v", err)
	}

	trans.GenerateID()
	if err := s.repo.CreateTransaction(ctx, trans); err != nil {
		return fmt.Errorf("guardar transacción confirmada: %w", err)
	}

	s.notificar(ctx, trans)
	return nil
}

func (s *Processor) strike(ctx context.Context, perfil *model.Profile, ahora time.Time) {
	if err := s.throttle.RegisterFailure(ctx, perfil, ahora); err != nil {
		log.Printf("no se pudo registrar el strike: %v", err)
	}
}

func (s *Processor) notificar(ctx context.Context, trans *model.Transaction) {
	noti := &model.Notification{
		Texto: fmt.Sprintf("Se registró una nueva transacción por $%.2f el %s.",
			trans.Cantidad, trans.Fecha.Format("02-01-2006")),
	}
	if err := s.repo.CreateNotification(ctx, noti); err != nil {
		log.Printf("no se pudo crear la notificación: %v", err)
	}
}

// parseMonto interpreta el monto del candidato con la misma normalización de
// separadores que los montos del texto
func parseMonto(s string) (float64, error) {
	limpio := strings.TrimSpace(s)
	limpio = strings.TrimPrefix(limpio, "$")
	limpio = strings.ReplaceAll(limpio, ".", "")
	limpio = strings.ReplaceAll(limpio, ",", ".")

	monto, err := strconv.ParseFloat(limpio, 64)
	if err != nil {
		return 0, err
	}
	if monto < 0 {
		return 0, fmt.Errorf("monto negativo: %s", s)
	}
	return monto, nil
}
