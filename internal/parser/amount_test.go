package parser

import "testing"

func TestResolveAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{
			name: "monto con $ gana sobre numero formateado",
			text: "pagué 5.000 con $12.000",
			want: 12000,
			ok:   true,
		},
		{
			name: "el mayor de varios montos con $",
			text: "tenía $2.000 y gasté $10.000",
			want: 10000,
			ok:   true,
		},
		{
			name: "monto con $ y decimales",
			text: "pagué $ 1.500,50 de luz",
			want: 1500.50,
			ok:   true,
		},
		{
			name: "numero formateado con punto de miles",
			text: "pagué 78.000 de alquiler",
			want: 78000,
			ok:   true,
		},
		{
			name: "cinco mil",
			text: "gasté 5 mil en el super",
			want: 5000,
			ok:   true,
		},
		{
			name: "diez k",
			text: "me salió 10k el arreglo",
			want: 10000,
			ok:   true,
		},
		{
			name: "tres lucas",
			text: "le di 3 lucas al plomero",
			want: 3000,
			ok:   true,
		},
		{
			name: "mayusculas",
			text: "gasté 5 MIL",
			want: 5000,
			ok:   true,
		},
		{
			name: "numero suelto",
			text: "gasté 20000 en comida ayer",
			want: 20000,
			ok:   true,
		},
		{
			name: "la fecha no se lee como monto",
			text: "el 12-11-24 gasté 5 lucas",
			want: 5000,
			ok:   true,
		},
		{
			name: "solo fecha no es monto",
			text: "el 12-11-24 no hice nada",
			want: 0,
			ok:   false,
		},
		{
			name: "sin numeros",
			text: "hola, ¿cómo andás?",
			want: 0,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveAmount(tt.text)
			if ok != tt.ok {
				t.Fatalf("ResolveAmount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ResolveAmount(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
