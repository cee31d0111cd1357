package parser

import "testing"

func TestResolveDestination(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "nombre y apellido",
			text: "A Juan Pérez",
			want: "Juan Pérez",
			ok:   true,
		},
		{
			name: "dentro de una frase",
			text: "Transferí a Juan Pérez",
			want: "Juan Pérez",
			ok:   true,
		},
		{
			name: "con para",
			text: "Para María del Carmen López",
			want: "María del Carmen López",
			ok:   true,
		},
		{
			name: "con hacia",
			text: "Hacia Ana María Ruiz",
			want: "Ana María Ruiz",
			ok:   true,
		},
		{
			name: "stopword corta el nombre",
			text: "a Juan Pérez CBU 2850590940090418135201",
			want: "Juan Pérez",
			ok:   true,
		},
		{
			name: "mayusculas sospechosas",
			text: "A BANCO NACION CBU 123456",
			ok:   false,
		},
		{
			name: "una sola palabra",
			text: "a Rodrigo",
			ok:   false,
		},
		{
			name: "demasiado corto",
			text: "A Juan",
			ok:   false,
		},
		{
			name: "stopword deja un resto inservible",
			text: "a la cuenta de Pedro",
			ok:   false,
		},
		{
			name: "sin preposicion no hay destino",
			text: "pagué con tarjeta",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDestination(tt.text)
			if ok != tt.ok {
				t.Fatalf("ResolveDestination(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ResolveDestination(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
