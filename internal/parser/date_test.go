package parser

import (
	"testing"
	"time"
)

func TestResolveDate(t *testing.T) {
	// Miércoles
	hoy := time.Date(2025, time.June, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		hint string
		want time.Time
	}{
		{
			name: "anteayer antes que ayer",
			text: "compré anteayer en la verdulería",
			want: time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ayer",
			text: "gasté 2000 ayer",
			want: time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "hoy",
			text: "pagué la luz hoy",
			want: time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia y mes en el pasado",
			text: "el 15 de marzo pagué el seguro",
			want: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia y mes futuro va al año anterior",
			text: "el 13 de noviembre cobré el aguinaldo",
			want: time.Date(2024, time.November, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia futuro del mes actual no retrocede",
			text: "el 30 de junio vence la tarjeta",
			want: time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia y mes invalidos caen a hoy",
			text: "el 31 de febrero no existe",
			want: time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "fecha numerica con año corto",
			text: "el 17-11-25 pagué el alquiler",
			want: time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "fecha numerica sin año",
			text: "el 5/3 pagué el gas",
			want: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia de semana pasado",
			text: "el viernes pasado gasté 3000",
			want: time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia de semana a secas",
			text: "el lunes compré carne",
			want: time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dia de semana igual a hoy retrocede una semana",
			text: "el miércoles gasté en nafta",
			want: time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sin pistas usa la fecha sugerida",
			text: "gasté en el super",
			hint: "2025-02-10",
			want: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "fecha sugerida invalida cae a hoy",
			text: "gasté en el super",
			hint: "10/02/2025",
			want: time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sin pistas ni sugerencia cae a hoy",
			text: "gasté en el super",
			want: time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDate(tt.text, tt.hint, hoy)
			if !got.Equal(tt.want) {
				t.Errorf("ResolveDate(%q, %q) = %v, want %v", tt.text, tt.hint, got, tt.want)
			}
		})
	}
}
