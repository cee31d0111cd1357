package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/icami12/ControlCash/internal/service"
)

func TestGenerateBalanceChart(t *testing.T) {
	g := NewChartGenerator()

	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	puntos := []service.BalancePoint{
		{Fecha: base, Balance: 100000},
		{Fecha: base.AddDate(0, 0, 1), Balance: 90000},
		{Fecha: base.AddDate(0, 0, 2), Balance: 65000},
	}

	png, err := g.GenerateBalanceChart(puntos)
	if err != nil {
		t.Fatalf("GenerateBalanceChart: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("gráfico vacío")
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("la salida no es un PNG")
	}
}

func TestGenerateBalanceChartPocosPuntos(t *testing.T) {
	g := NewChartGenerator()

	png, err := g.GenerateBalanceChart([]service.BalancePoint{
		{Fecha: time.Now(), Balance: 100},
	})
	if err != nil {
		t.Fatalf("GenerateBalanceChart: %v", err)
	}
	if png != nil {
		t.Errorf("con un solo punto no hay gráfico que dibujar")
	}
}
