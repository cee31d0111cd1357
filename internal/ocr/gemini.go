package ocr

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModelName = "gemini-2.0-flash"

// Client extrae texto de imágenes (tickets, comprobantes de transferencia)
// usando el modelo de visión. El texto resultante entra al mismo pipeline
// que un mensaje escrito.
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

// ExtractText transcribe todo el texto visible en la imagen. Devuelve el
// texto con los espacios colapsados, listo para los parsers.
func (c *Client) ExtractText(ctx context.Context, img []byte) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("ocr: crear cliente genai: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: "Transcribí todo el texto visible en la imagen, en español, " +
					"sin agregar nada. Si no hay texto respondé con un string vacío."},
				{
					InlineData: &genai.Blob{
						MIMEType: "image/jpeg",
						Data:     img,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("ocr: generate content: %w", err)
	}

	return strings.Join(strings.Fields(resp.Text()), " "), nil
}
