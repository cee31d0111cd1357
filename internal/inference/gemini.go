package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Errores operativos del colaborador de inferencia
var (
	ErrMissingAPIKey = errors.New("missing_api_key")
	ErrAPIError      = errors.New("api_error")
)

// Candidate es el resultado crudo del modelo antes de validarse
type Candidate struct {
	EsTransaccion bool    `json:"es_transaccion"`
	Tipo          string  `json:"tipo"`
	Monto         string  `json:"monto"`
	Categoria     string  `json:"categoria"`
	Fecha         string  `json:"fecha"`
	Destino       string  `json:"destino"`
	Confianza     float64 `json:"confianza"`
}

const defaultModelName = "gemini-2.0-flash"

const prompt = "Sos un extractor de transacciones financieras personales para mensajes " +
	"informales en español rioplatense.\n\n" +
	"Tarea:\n" +
	"- Analizá el mensaje del usuario y decidí si describe una transacción YA ocurrida " +
	"(no una intención futura ni una hipótesis).\n" +
	"- Respondé SOLO con JSON válido, sin comentarios ni texto extra.\n" +
	"- NO uses ```json ni ningún Markdown.\n\n" +
	"El objeto debe tener exactamente estos campos:\n" +
	"- \"es_transaccion\": bool\n" +
	"- \"tipo\": \"ingreso\" o \"gasto\" (string vacío si no se puede determinar)\n" +
	"- \"monto\": string con el número, sin símbolo $, punto solo como separador " +
	"de miles y coma para decimales (string vacío si no hay monto)\n" +
	"- \"categoria\": una de [Comida, Salario, Compras, Transferencias, Servicios, Ventas, Otros]\n" +
	"- \"fecha\": string ISO \"YYYY-MM-DD\" o string vacío\n" +
	"- \"destino\": nombre del destinatario o string vacío\n" +
	"- \"confianza\": número entre 0 y 1\n\n" +
	"Mensaje del usuario:\n"

// Client llama al modelo externo para interpretar mensajes que las
// heurísticas locales no alcanzan a resolver. La credencial se inyecta por
// constructor, nunca se lee de estado global.
type Client struct {
	apiKey    string
	modelName string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:    apiKey,
		modelName: defaultModelName,
	}
}

// Infer envía el texto al modelo y devuelve el candidato extraído.
// Distingue credencial ausente (ErrMissingAPIKey) de fallas del servicio o
// respuestas inservibles (ErrAPIError).
func (c *Client) Infer(ctx context.Context, text string) (*Candidate, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: crear cliente genai: %v", ErrAPIError, err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt + text},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", ErrAPIError, err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("%w: respuesta vacía del modelo", ErrAPIError)
	}

	var cand Candidate
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &cand); err != nil {
		return nil, fmt.Errorf("%w: la respuesta no es JSON: %v", ErrAPIError, err)
	}

	return &cand, nil
}

// cleanModelJSON limpia fences de Markdown si el modelo ignoró las
// instrucciones
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
