package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/icami12/ControlCash/internal/inference"
	"github.com/icami12/ControlCash/internal/model"
	"github.com/icami12/ControlCash/internal/repository"
	"github.com/icami12/ControlCash/internal/throttle"
)

type stubRepo struct {
	transacciones  []*model.Transaction
	notificaciones []*model.Notification
	guardadas      []model.Transaction // lo que devuelve GetTransactions
	perfilPorCode  *model.Profile
	saves          int
	failCreate     bool
}

func (r *stubRepo) CreateTransaction(ctx context.Context, trans *model.Transaction) error {
	if r.failCreate {
		return errors.New("storage caído")
	}
	r.transacciones = append(r.transacciones, trans)
	return nil
}

func (r *stubRepo) GetTransactions(ctx context.Context, userID string, filter repository.TransactionFilter) ([]model.Transaction, error) {
	return r.guardadas, nil
}

func (r *stubRepo) GetProfileByChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	return nil, repository.ErrProfileNotFound
}

func (r *stubRepo) GetProfileByCode(ctx context.Context, code string) (*model.Profile, error) {
	if r.perfilPorCode != nil && r.perfilPorCode.TelegramCode == code {
		return r.perfilPorCode, nil
	}
	return nil, repository.ErrProfileNotFound
}

func (r *stubRepo) SaveProfile(ctx context.Context, perfil *model.Profile) error {
	r.saves++
	return nil
}

func (r *stubRepo) CreateNotification(ctx context.Context, noti *model.Notification) error {
	r.notificaciones = append(r.notificaciones, noti)
	return nil
}

type stubInferencer struct {
	cand     *inference.Candidate
	err      error
	llamadas int
}

func (s *stubInferencer) Infer(ctx context.Context, text string) (*inference.Candidate, error) {
	s.llamadas++
	return s.cand, s.err
}

var ahoraFija = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func newTestProcessor(repo *stubRepo, inf *stubInferencer) *Processor {
	th := throttle.New(repo, 2, 15*time.Minute)
	p := NewProcessor(repo, inf, th, 0.7)
	p.now = func() time.Time { return ahoraFija }
	return p
}

func TestProcessRegistraTransaccion(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{cand: &inference.Candidate{
		EsTransaccion: true,
		Tipo:          model.TipoGasto,
		Monto:         "20000",
		Categoria:     "Comida",
		Confianza:     0.9,
	}}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1"}

	res, err := p.Process(context.Background(), perfil, "gasté 20000 en comida ayer")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoRegistrada {
		t.Fatalf("estado = %v, want EstadoRegistrada (motivo %q)", res.Estado, res.Motivo)
	}

	trans := res.Transaccion
	if trans == nil {
		t.Fatal("resultado sin transacción")
	}
	if trans.Cantidad != 20000 {
		t.Errorf("cantidad = %v, want 20000", trans.Cantidad)
	}
	if trans.Categoria != "Comida" {
		t.Errorf("categoría = %q, want Comida", trans.Categoria)
	}
	if want := time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC); !trans.Fecha.Equal(want) {
		t.Errorf("fecha = %v, want %v", trans.Fecha, want)
	}
	if trans.ID == "" {
		t.Errorf("transacción sin ID")
	}
	if len(repo.transacciones) != 1 {
		t.Errorf("transacciones persistidas = %d, want 1", len(repo.transacciones))
	}
	if len(repo.notificaciones) != 1 {
		t.Errorf("notificaciones = %d, want 1", len(repo.notificaciones))
	}
	if perfil.Strikes != 0 || perfil.LockedUntil != nil {
		t.Errorf("el éxito no limpió el estado anti-abuso: %+v", perfil)
	}
}

func TestProcessConfianzaBajaPideConfirmacion(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{cand: &inference.Candidate{
		EsTransaccion: true,
		Tipo:          model.TipoGasto,
		Monto:         "20000",
		Categoria:     "Comida",
		Confianza:     0.5,
	}}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1", Strikes: 1}

	res, err := p.Process(context.Background(), perfil, "gasté 20000 en comida")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoNecesitaConfirmacion {
		t.Fatalf("estado = %v, want EstadoNecesitaConfirmacion", res.Estado)
	}
	if res.Transaccion == nil || res.Transaccion.Cantidad != 20000 {
		t.Errorf("la transacción tentativa no viene armada: %+v", res.Transaccion)
	}
	if len(repo.transacciones) != 0 {
		t.Errorf("una transacción dudosa no debe persistirse")
	}
	if perfil.Strikes != 1 {
		t.Errorf("strikes = %d, want 1 (sin cambios)", perfil.Strikes)
	}
	if repo.saves != 0 {
		t.Errorf("saves = %d, want 0 (sin cambios)", repo.saves)
	}
}

func TestProcessUsuarioBloqueado(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{cand: &inference.Candidate{EsTransaccion: true}}
	p := newTestProcessor(repo, inf)

	hasta := ahoraFija.Add(10 * time.Minute)
	perfil := &model.Profile{ID: "u1", LockedUntil: &hasta}

	res, err := p.Process(context.Background(), perfil, "gasté 20000")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoRechazada || res.Motivo != MotivoBloqueado {
		t.Errorf("estado = %v motivo = %q, want rechazo por bloqueo", res.Estado, res.Motivo)
	}
	if inf.llamadas != 0 {
		t.Errorf("se llamó al modelo con el usuario bloqueado")
	}
}

func TestProcessErrorDeInferencia(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{err: errors.New("timeout")}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1"}

	res, err := p.Process(context.Background(), perfil, "gasté 20000")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoRechazada || res.Motivo != MotivoNoParseable {
		t.Errorf("estado = %v motivo = %q, want rechazo no parseable", res.Estado, res.Motivo)
	}
	if perfil.Strikes != 1 {
		t.Errorf("strikes = %d, want 1", perfil.Strikes)
	}
}

func TestProcessDosFallasBloquean(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{err: errors.New("timeout")}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1"}

	for i := 0; i < 2; i++ {
		if _, err := p.Process(context.Background(), perfil, "???"); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}
	if perfil.LockedUntil == nil {
		t.Fatal("dos fallas seguidas no bloquearon al usuario")
	}

	res, err := p.Process(context.Background(), perfil, "???")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Motivo != MotivoBloqueado {
		t.Errorf("motivo = %q, want %q", res.Motivo, MotivoBloqueado)
	}
	if inf.llamadas != 2 {
		t.Errorf("llamadas al modelo = %d, want 2", inf.llamadas)
	}
}

func TestProcessCandidatoInvalido(t *testing.T) {
	tests := []struct {
		name   string
		cand   *inference.Candidate
		motivo string
	}{
		{
			name:   "no es transaccion",
			cand:   &inference.Candidate{EsTransaccion: false, Confianza: 0.9},
			motivo: MotivoNoTransaccion,
		},
		{
			name:   "sin tipo",
			cand:   &inference.Candidate{EsTransaccion: true, Monto: "100", Confianza: 0.9},
			motivo: MotivoCamposFaltantes,
		},
		{
			name:   "sin monto",
			cand:   &inference.Candidate{EsTransaccion: true, Tipo: model.TipoGasto, Confianza: 0.9},
			motivo: MotivoCamposFaltantes,
		},
		{
			name:   "tipo desconocido",
			cand:   &inference.Candidate{EsTransaccion: true, Tipo: "prestamo", Monto: "100", Confianza: 0.9},
			motivo: MotivoTipoInvalido,
		},
		{
			name:   "monto ilegible",
			cand:   &inference.Candidate{EsTransaccion: true, Tipo: model.TipoGasto, Monto: "mucho", Confianza: 0.9},
			motivo: MotivoMontoInvalido,
		},
		{
			name:   "monto negativo",
			cand:   &inference.Candidate{EsTransaccion: true, Tipo: model.TipoGasto, Monto: "-100", Confianza: 0.9},
			motivo: MotivoMontoInvalido,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			p := newTestProcessor(repo, &stubInferencer{cand: tt.cand})
			perfil := &model.Profile{ID: "u1"}

			res, err := p.Process(context.Background(), perfil, "mensaje cualquiera")
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if res.Estado != EstadoRechazada || res.Motivo != tt.motivo {
				t.Errorf("estado = %v motivo = %q, want rechazo %q", res.Estado, res.Motivo, tt.motivo)
			}
			if perfil.Strikes != 1 {
				t.Errorf("strikes = %d, want 1", perfil.Strikes)
			}
			if len(repo.transacciones) != 0 {
				t.Errorf("se persistió una transacción inválida")
			}
		})
	}
}

func TestProcessFusionaHeuristicasSobreElModelo(t *testing.T) {
	repo := &stubRepo{}
	inf := &stubInferencer{cand: &inference.Candidate{
		EsTransaccion: true,
		Tipo:          model.TipoGasto,
		Monto:         "5000",
		Categoria:     "Joyería",
		Fecha:         "2025-03-10",
		Confianza:     0.9,
	}}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1"}

	res, err := p.Process(context.Background(), perfil, "pagué $12.000")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoRegistrada {
		t.Fatalf("estado = %v, want EstadoRegistrada (motivo %q)", res.Estado, res.Motivo)
	}

	trans := res.Transaccion
	// El monto del texto pisa al del modelo
	if trans.Cantidad != 12000 {
		t.Errorf("cantidad = %v, want 12000", trans.Cantidad)
	}
	// Categoría fuera del conjunto fijo cae al clasificador local
	if trans.Categoria != model.CategoriaOtros {
		t.Errorf("categoría = %q, want %q", trans.Categoria, model.CategoriaOtros)
	}
	// Sin pistas en el texto, vale la fecha sugerida por el modelo
	if want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC); !trans.Fecha.Equal(want) {
		t.Errorf("fecha = %v, want %v", trans.Fecha, want)
	}
}

func TestProcessErrorDeStorage(t *testing.T) {
	repo := &stubRepo{failCreate: true}
	inf := &stubInferencer{cand: &inference.Candidate{
		EsTransaccion: true,
		Tipo:          model.TipoIngreso,
		Monto:         "300000",
		Categoria:     "Salario",
		Confianza:     0.95,
	}}
	p := newTestProcessor(repo, inf)
	perfil := &model.Profile{ID: "u1"}

	res, err := p.Process(context.Background(), perfil, "cobré el sueldo")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Estado != EstadoRechazada || res.Motivo != MotivoStorage {
		t.Errorf("estado = %v motivo = %q, want rechazo por storage", res.Estado, res.Motivo)
	}
}

func TestRecordConfirmed(t *testing.T) {
	repo := &stubRepo{}
	p := newTestProcessor(repo, &stubInferencer{})
	perfil := &model.Profile{ID: "u1", Strikes: 1}
	trans := &model.Transaction{
		UserID:   "u1",
		Tipo:     model.TipoGasto,
		Cantidad: 20000,
		Fecha:    ahoraFija,
	}

	if err := p.RecordConfirmed(context.Background(), perfil, trans); err != nil {
		t.Fatalf("RecordConfirmed: %v", err)
	}
	if trans.ID == "" {
		t.Errorf("transacción confirmada sin ID")
	}
	if len(repo.transacciones) != 1 {
		t.Errorf("transacciones persistidas = %d, want 1", len(repo.transacciones))
	}
	if len(repo.notificaciones) != 1 {
		t.Errorf("notificaciones = %d, want 1", len(repo.notificaciones))
	}
	if perfil.Strikes != 0 {
		t.Errorf("strikes = %d, want 0", perfil.Strikes)
	}
}
