package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Fechas tipo 12-11-24 que no deben leerse como montos
	reFechaEnTexto = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)

	reMontoConSigno = regexp.MustCompile(`\$\s*([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,]\d{2})?|\d+)`)
	reMontoFormato  = regexp.MustCompile(`\b[0-9]{1,3}(?:[.,][0-9]{3})+(?:[.,]\d{2})?\b`)
	reMultiplicador = regexp.MustCompile(`(\d+)\s*(mil|miles|m|k|lucas|luca)\b`)
	reNumeroSuelto  = regexp.MustCompile(`\b\d{1,10}\b`)
)

// ResolveAmount extrae un monto del texto probando familias de patrones en
// orden de prioridad: montos con $, números formateados (78.000 / 1,250),
// expresiones tipo "5 mil" o "3 lucas" y números sueltos. La primera familia
// que matchea gana. Devuelve false si ninguna encuentra nada.
func ResolveAmount(text string) (float64, bool) {
	t := strings.ToLower(text)
	t = reFechaEnTexto.ReplaceAllString(t, "")

	// 1. Montos con signo $
	if matches := reMontoConSigno.FindAllStringSubmatch(t, -1); len(matches) > 0 {
		return maxNormalizado(primerGrupo(matches))
	}

	// 2. Montos formateados tipo 78.000 o 1,250
	if matches := reMontoFormato.FindAllString(t, -1); len(matches) > 0 {
		// Descartamos candidatos con más de 10 dígitos (teléfonos, CBUs)
		filtrados := make([]string, 0, len(matches))
		for _, m := range matches {
			digitos := strings.NewReplacer(".", "", ",", "").Replace(m)
			if len(digitos) <= 10 {
				filtrados = append(filtrados, m)
			}
		}
		if len(filtrados) > 0 {
			return maxNormalizado(filtrados)
		}
	}

	// 3. Expresiones tipo "5 mil", "10k", "3 lucas"
	if matches := reMultiplicador.FindAllStringSubmatch(t, -1); len(matches) > 0 {
		var mejor float64
		for _, m := range matches {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			if valor := float64(n * 1000); valor > mejor {
				mejor = valor
			}
		}
		return mejor, mejor > 0
	}

	// 4. Números sueltos
	if matches := reNumeroSuelto.FindAllString(t, -1); len(matches) > 0 {
		var mejor float64
		for _, m := range matches {
			n, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				continue
			}
			if valor := float64(n); valor > mejor {
				mejor = valor
			}
		}
		return mejor, mejor > 0
	}

	return 0, false
}

func primerGrupo(matches [][]string) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// maxNormalizado normaliza separadores (punto de miles fuera, coma decimal
// a punto) y devuelve el candidato de mayor valor numérico
func maxNormalizado(candidatos []string) (float64, bool) {
	var mejor float64
	encontrado := false
	for _, c := range candidatos {
		limpio := strings.ReplaceAll(c, ".", "")
		limpio = strings.ReplaceAll(limpio, ",", ".")
		valor, err := strconv.ParseFloat(limpio, 64)
		if err != nil {
			continue
		}
		if !encontrado || valor > mejor {
			mejor = valor
			encontrado = true
		}
	}
	return mejor, encontrado
}
