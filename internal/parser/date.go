package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var meses = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August,
	"septiembre": time.September, "setiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,
}

// Días de la semana con sus variantes sin tilde
var dias = []struct {
	Nombre  string
	Weekday time.Weekday
}{
	{"lunes", time.Monday},
	{"martes", time.Tuesday},
	{"miércoles", time.Wednesday},
	{"miercoles", time.Wednesday},
	{"jueves", time.Thursday},
	{"viernes", time.Friday},
	{"sábado", time.Saturday},
	{"sabado", time.Saturday},
	{"domingo", time.Sunday},
}

var (
	reDiaMes       = regexp.MustCompile(`(\d{1,2})\s+de\s+([a-záéíóú]+)`)
	reFechaNumeric = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)

	reDiasSemana = make([]*regexp.Regexp, len(dias))
)

func init() {
	for i, d := range dias {
		reDiasSemana[i] = regexp.MustCompile(`\b` + d.Nombre + `\b`)
	}
}

// ResolveDate resuelve la fecha de un mensaje, de menos a más específica:
// relativos (anteayer/ayer/hoy), "13 de noviembre", fecha numérica, día de
// semana con "pasado", día de semana a secas (última ocurrencia, nunca hoy),
// la fecha sugerida por el modelo y finalmente hoy.
func ResolveDate(text, hint string, hoy time.Time) time.Time {
	t := strings.ToLower(text)
	hoy = alInicioDelDia(hoy)

	// Relativos simples. "anteayer" contiene "ayer": el orden importa.
	if strings.Contains(t, "anteayer") {
		return hoy.AddDate(0, 0, -2)
	}
	if strings.Contains(t, "ayer") {
		return hoy.AddDate(0, 0, -1)
	}
	if strings.Contains(t, "hoy") {
		return hoy
	}

	// Día + mes, antes que los días de semana
	if fecha, ok := detectarDiaMes(t, hoy); ok {
		return fecha
	}

	// Fecha numérica explícita
	if fecha, ok := detectarFechaNumerica(t, hoy); ok {
		return fecha
	}

	// Día de semana "pasado" explícito
	for _, d := range dias {
		if strings.Contains(t, d.Nombre+" pasado") {
			return ultimoDiaSemana(d.Weekday, hoy)
		}
	}

	// Día de semana a secas → última ocurrencia, estrictamente anterior a hoy
	for i, d := range dias {
		if reDiasSemana[i].MatchString(t) {
			return ultimoDiaSemana(d.Weekday, hoy)
		}
	}

	// Fecha sugerida externamente (ISO)
	if hint != "" {
		if fecha, err := time.ParseInLocation("2006-01-02", hint, hoy.Location()); err == nil {
			return fecha
		}
	}

	return hoy
}

// ultimoDiaSemana devuelve la última ocurrencia del día pedido, siempre en
// el pasado: si hoy cae en ese día retrocede una semana completa
func ultimoDiaSemana(target time.Weekday, hoy time.Time) time.Time {
	delta := (int(hoy.Weekday()) - int(target) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return hoy.AddDate(0, 0, -delta)
}

func detectarDiaMes(t string, hoy time.Time) (time.Time, bool) {
	m := reDiaMes.FindStringSubmatch(t)
	if m == nil {
		return time.Time{}, false
	}

	dia, _ := strconv.Atoi(m[1])
	mes, ok := meses[m[2]]
	if !ok {
		return time.Time{}, false
	}

	fecha, ok := fechaValida(hoy.Year(), mes, dia, hoy.Location())
	if !ok {
		return time.Time{}, false
	}

	// Solo ir al año anterior si la fecha todavía no ocurrió este año
	// y el mes nombrado no es el actual
	if fecha.After(hoy) && mes != hoy.Month() {
		fecha, ok = fechaValida(hoy.Year()-1, mes, dia, hoy.Location())
		if !ok {
			return time.Time{}, false
		}
	}

	return fecha, true
}

func detectarFechaNumerica(t string, hoy time.Time) (time.Time, bool) {
	m := reFechaNumeric.FindStringSubmatch(t)
	if m == nil {
		return time.Time{}, false
	}

	dia, _ := strconv.Atoi(m[1])
	mes, _ := strconv.Atoi(m[2])

	año := hoy.Year()
	if m[3] != "" {
		año, _ = strconv.Atoi(m[3])
		if año < 100 {
			// Interpretar 25 como 2025
			año += 2000
		}
	}

	return fechaValida(año, time.Month(mes), dia, hoy.Location())
}

// fechaValida construye la fecha y rechaza combinaciones inválidas
// (time.Date normaliza "31 de febrero" a marzo en vez de fallar)
func fechaValida(año int, mes time.Month, dia int, loc *time.Location) (time.Time, bool) {
	if mes < time.January || mes > time.December || dia < 1 {
		return time.Time{}, false
	}
	fecha := time.Date(año, mes, dia, 0, 0, 0, 0, loc)
	if fecha.Month() != mes || fecha.Day() != dia {
		return time.Time{}, false
	}
	return fecha, true
}

func alInicioDelDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
