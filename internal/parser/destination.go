package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reDestino = regexp.MustCompile(`(?i)(?:Para|A|Hacia)\s+([A-Za-zÁÉÍÓÚÑáéíóúñ .'-]{3,80})`)

	// Términos administrativos que cortan el nombre capturado
	// ("Juan Perez CBU 123..." → "Juan Perez")
	reStopword = regexp.MustCompile(`(?i)\b(?:CUIT|CUIL|CBU|CVU|Cuenta|Banco|Alias|Nro|Número|Importe|Monto|Transacci[oó]n)\b`)

	reDigito = regexp.MustCompile(`\d`)
)

// ResolveDestination extrae el destinatario de una transferencia buscando el
// texto que sigue a "a" / "para" / "hacia". Es deliberadamente conservador:
// ante la duda devuelve false antes que un falso positivo.
func ResolveDestination(text string) (string, bool) {
	t := strings.ReplaceAll(text, "\n", " ")

	m := reDestino.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	candidato := m[1]

	if loc := reStopword.FindStringIndex(candidato); loc != nil {
		candidato = candidato[:loc[0]]
	}
	candidato = strings.Trim(candidato, " .:-")

	// No debe contener números
	if reDigito.MatchString(candidato) {
		return "", false
	}

	// Ni demasiado corto ni demasiado largo
	if n := utf8.RuneCountInString(candidato); n < 5 || n > 60 {
		return "", false
	}

	// Al menos dos palabras tipo nombre-apellido
	partes := strings.Fields(candidato)
	if len(partes) < 2 {
		return "", false
	}

	for _, p := range partes {
		if utf8.RuneCountInString(p) < 2 {
			return "", false
		}
		// Palabras sospechosas tipo "TRANSFERENCIA"
		if esMayusculas(p) && utf8.RuneCountInString(p) > 4 {
			return "", false
		}
	}

	return candidato, true
}

func esMayusculas(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
