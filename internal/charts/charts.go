package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/icami12/ControlCash/internal/format"
	"github.com/icami12/ControlCash/internal/service"
)

// ChartGenerator genera los gráficos que el bot manda como foto
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateBalanceChart dibuja la evolución del balance acumulado en el
// tiempo. Devuelve nil si no hay suficientes puntos para una línea.
func (g *ChartGenerator) GenerateBalanceChart(puntos []service.BalancePoint) ([]byte, error) {
	if len(puntos) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, len(puntos))
	yValues := make([]float64, len(puntos))
	for i, p := range puntos {
		xValues[i] = p.Fecha
		yValues[i] = p.Balance
	}

	dorado := drawing.ColorFromHex("d4af37")

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02.01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return "$" + format.FormatearPesos(v.(float64), 0)
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Balance",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: dorado,
					StrokeWidth: 3,
					FillColor:   dorado.WithAlpha(40),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}

	return buf.Bytes(), nil
}
