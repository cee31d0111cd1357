package format

import (
	"math"
	"strconv"
	"strings"
)

// FormatearPesos formatea números al formato argentino.
// Ej: 244000 -> "244.000", 244000.5 con 2 decimales -> "244.000,50"
func FormatearPesos(valor float64, decimales int) string {
	negativo := valor < 0

	s := strconv.FormatFloat(math.Abs(valor), 'f', decimales, 64)
	entero, dec := s, ""
	if i := strings.Index(s, "."); i != -1 {
		entero, dec = s[:i], s[i+1:]
	}

	// Agrupamos el entero de a tres dígitos con punto
	grupos := make([]string, 0, len(entero)/3+1)
	for len(entero) > 3 {
		grupos = append([]string{entero[len(entero)-3:]}, grupos...)
		entero = entero[:len(entero)-3]
	}
	grupos = append([]string{entero}, grupos...)

	out := strings.Join(grupos, ".")
	if dec != "" {
		out += "," + dec
	}
	if negativo {
		out = "-" + out
	}
	return out
}
