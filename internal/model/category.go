package model

// Categorías fijas del sistema. El orden importa: es la regla de
// desempate del clasificador.
var Categorias = []string{
	"Comida",
	"Salario",
	"Compras",
	"Transferencias",
	"Servicios",
	"Ventas",
	"Otros",
}

// CategoriaOtros es la categoría por defecto
const CategoriaOtros = "Otros"

// EsCategoriaValida indica si el nombre pertenece al conjunto fijo
func EsCategoriaValida(nombre string) bool {
	for _, c := range Categorias {
		if c == nombre {
			return true
		}
	}
	return false
}
