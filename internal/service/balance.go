package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/icami12/ControlCash/internal/model"
	"github.com/icami12/ControlCash/internal/repository"
)

// Saldo resume el estado de cuenta del usuario
type Saldo struct {
	Ingresos float64
	Gastos   float64
	Balance  float64
}

// GetSaldo calcula ingresos, gastos y balance sobre todas las transacciones
func (s *Processor) GetSaldo(ctx context.Context, userID string) (*Saldo, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	saldo := &Saldo{}
	for _, t := range transactions {
		if t.Tipo == model.TipoIngreso {
			saldo.Ingresos += t.Cantidad
		} else {
			saldo.Gastos += t.Cantidad
		}
	}
	saldo.Balance = saldo.Ingresos - saldo.Gastos

	return saldo, nil
}

// GetRecentTransactions devuelve los últimos movimientos del usuario
func (s *Processor) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]model.Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, repository.TransactionFilter{Limit: limit})
}

// BalancePoint es un punto de la serie de balance acumulado por día
type BalancePoint struct {
	Fecha   time.Time
	Balance float64
}

// GetBalanceSeries arma la serie temporal de balance acumulado que alimenta
// el gráfico
func (s *Processor) GetBalanceSeries(ctx context.Context, userID string) ([]BalancePoint, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	// Agrupamos por día
	porDia := make(map[time.Time]float64)
	for _, t := range transactions {
		dia := time.Date(t.Fecha.Year(), t.Fecha.Month(), t.Fecha.Day(), 0, 0, 0, 0, time.UTC)
		porDia[dia] += t.Signed()
	}

	fechas := make([]time.Time, 0, len(porDia))
	for dia := range porDia {
		fechas = append(fechas, dia)
	}
	sort.Slice(fechas, func(i, j int) bool {
		return fechas[i].Before(fechas[j])
	})

	// Balance acumulado
	puntos := make([]BalancePoint, 0, len(fechas))
	acumulado := 0.0
	for _, dia := range fechas {
		acumulado += porDia[dia]
		puntos = append(puntos, BalancePoint{Fecha: dia, Balance: acumulado})
	}

	return puntos, nil
}
