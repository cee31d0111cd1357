package parser

import (
	"strings"

	"github.com/icami12/ControlCash/internal/model"
)

type categoriaPalabras struct {
	Nombre   string
	Palabras []string
}

// El orden de la tabla es la regla de desempate: la primera categoría cuyo
// conjunto de palabras matchea gana
var tablaCategorias = []categoriaPalabras{
	{"Comida", []string{"comida", "almuerzo", "cena", "merienda", "restaurante"}},
	{"Salario", []string{"salario", "sueldo", "me pagaron", "cobré"}},
	{"Compras", []string{"compré", "compre", "compra", "tienda", "kiosco", "local", "shop", "tarjeta"}},
	{"Transferencias", []string{"transferi", "transfirio", "mandé", "envie", "envié", "transferencia"}},
	{"Servicios", []string{"luz", "agua", "gas", "internet", "boleta", "telefono", "alquiler", "cable", "seguro", "colegio", "escuela"}},
	{"Ventas", []string{"vendí", "vendi", "me trans", "me pas", "venta"}},
}

// ClassifyCategory clasifica el texto en una de las categorías fijas por
// palabras clave. Función pura: sin estado, determinística.
func ClassifyCategory(text string) string {
	t := strings.ToLower(text)

	for _, c := range tablaCategorias {
		for _, p := range c.Palabras {
			if strings.Contains(t, p) {
				return c.Nombre
			}
		}
	}

	return model.CategoriaOtros
}
