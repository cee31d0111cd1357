package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/icami12/ControlCash/internal/charts"
	"github.com/icami12/ControlCash/internal/format"
	"github.com/icami12/ControlCash/internal/model"
	"github.com/icami12/ControlCash/internal/repository"
	"github.com/icami12/ControlCash/internal/service"
)

// OCR convierte una imagen en texto para el pipeline de extracción
type OCR interface {
	ExtractText(ctx context.Context, img []byte) (string, error)
}

// pendiente guarda una extracción dudosa a la espera de que el usuario
// confirme o cancele
type pendiente struct {
	perfil *model.Profile
	trans  *model.Transaction
}

type Bot struct {
	api        *tgbotapi.BotAPI
	service    *service.Processor
	ocr        OCR
	charts     *charts.ChartGenerator
	pendientes map[int64]*pendiente // por chat
}

func NewBot(token string, svc *service.Processor, ocr OCR) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:        api,
		service:    svc,
		ocr:        ocr,
		charts:     charts.NewChartGenerator(),
		pendientes: make(map[int64]*pendiente),
	}, nil
}

// Start arranca el bot en modo long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Logueamos el error pero seguimos atendiendo
			log.Printf("error handling update: %v", err)
		}
	}

	return nil
}

// HandleWebhook - punto de entrada para las actualizaciones vía webhook
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if len(update.Message.Photo) > 0 {
		b.handlePhoto(update.Message)
		return nil
	}

	if update.Message.Text != "" {
		b.processText(update.Message.Chat.ID, update.Message.Text)
	}

	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start", "ayuda":
		b.handleAyuda(message)
	case "vincular":
		b.handleVincular(message)
	case "saldo":
		b.handleSaldo(message)
	case "movimientos":
		b.handleMovimientos(message)
	case "grafico":
		b.handleGrafico(message)
	}

	return nil
}

func (b *Bot) handleAyuda(message *tgbotapi.Message) {
	b.send(message.Chat.ID,
		"😊 Comandos disponibles:\n"+
			"/vincular - Vincular tu cuenta con ControlCash. Ej: /vincular 123456\n"+
			"/ayuda - Mostrar este mensaje\n"+
			"/saldo - Ver tu saldo actual\n"+
			"/movimientos - Ver tus últimos movimientos\n"+
			"/grafico - Ver la evolución de tu balance\n"+
			"Podés también escribir: 'gasté 20000 en comida el 24-10-25' u 'hoy ingreso 150000 sueldo', "+
			"o mandar la foto de un comprobante.")
}

func (b *Bot) handleVincular(message *tgbotapi.Message) {
	codigo := strings.TrimSpace(message.CommandArguments())
	if codigo == "" {
		b.send(message.Chat.ID, "Formato incorrecto. Usá: /vincular CODIGO")
		return
	}

	perfil, err := b.service.LinkProfile(context.Background(), codigo, message.Chat.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			b.send(message.Chat.ID, "Código inválido ❌ Respetá mayúsculas y números u obtené un código válido.")
		} else {
			b.sendErrorMessage(message.Chat.ID, "Error al vincular tu cuenta")
		}
		return
	}

	b.send(message.Chat.ID, fmt.Sprintf(
		"Hola %s 👋\nTu cuenta fue vinculada correctamente ✔️\nEnviá /ayuda para conocer qué comandos manejamos.",
		perfil.Username))
}

func (b *Bot) handleSaldo(message *tgbotapi.Message) {
	perfil := b.requirePerfil(message.Chat.ID)
	if perfil == nil {
		return
	}

	saldo, err := b.service.GetSaldo(context.Background(), perfil.ID)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al calcular tu saldo")
		return
	}

	b.send(message.Chat.ID, fmt.Sprintf(
		"💰 Saldo disponible: $%s\n\n"+
			"📊 Estado de cuenta:\n"+
			"+ Ingresos: %s\n"+
			"- Gastos: %s\n"+
			"---------------------\n"+
			"💰 Saldo: %s",
		format.FormatearPesos(saldo.Balance, 0),
		format.FormatearPesos(saldo.Ingresos, 0),
		format.FormatearPesos(saldo.Gastos, 0),
		format.FormatearPesos(saldo.Balance, 0)))
}

func (b *Bot) handleMovimientos(message *tgbotapi.Message) {
	perfil := b.requirePerfil(message.Chat.ID)
	if perfil == nil {
		return
	}

	transacciones, err := b.service.GetRecentTransactions(context.Background(), perfil.ID, 5)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al buscar tus movimientos")
		return
	}

	if len(transacciones) == 0 {
		b.send(message.Chat.ID, "Todavía no registraste ningún movimiento.")
		return
	}

	text := "📋 Últimos movimientos:\n"
	for _, t := range transacciones {
		emoji := "💸"
		if t.Tipo == model.TipoIngreso {
			emoji = "💰"
		}
		text += fmt.Sprintf("%s %s: %s $%s (%s)\n",
			emoji, t.Fecha.Format("02-01-2006"), t.Tipo,
			format.FormatearPesos(t.Cantidad, 0), t.Categoria)
	}

	b.send(message.Chat.ID, text)
}

func (b *Bot) handleGrafico(message *tgbotapi.Message) {
	perfil := b.requirePerfil(message.Chat.ID)
	if perfil == nil {
		return
	}

	puntos, err := b.service.GetBalanceSeries(context.Background(), perfil.ID)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al armar el gráfico")
		return
	}

	png, err := b.charts.GenerateBalanceChart(puntos)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al dibujar el gráfico")
		return
	}
	if png == nil {
		b.send(message.Chat.ID, "Todavía no hay suficientes movimientos para graficar.")
		return
	}

	photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{
		Name:  "balance.png",
		Bytes: png,
	})
	photo.Caption = "📈 Evolución de tu balance"
	b.api.Send(photo)
}

// handlePhoto baja la foto de mayor resolución, la pasa por OCR y mete el
// texto resultante en el mismo pipeline que un mensaje escrito
func (b *Bot) handlePhoto(message *tgbotapi.Message) {
	fileID := message.Photo[len(message.Photo)-1].FileID

	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al descargar la imagen")
		return
	}

	resp, err := http.Get(url)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al descargar la imagen")
		return
	}
	defer resp.Body.Close()

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Error al descargar la imagen")
		return
	}

	texto, err := b.ocr.ExtractText(context.Background(), img)
	if err != nil {
		log.Printf("ocr falló: %v", err)
		b.sendErrorMessage(message.Chat.ID, "Error interno procesando la imagen")
		return
	}

	if strings.TrimSpace(texto) == "" {
		b.send(message.Chat.ID, "No pude leer ningún texto en la imagen 😕")
		return
	}

	b.processText(message.Chat.ID, texto)
}

func (b *Bot) processText(chatID int64, texto string) {
	ctx := context.Background()

	perfil := b.requirePerfil(chatID)
	if perfil == nil {
		return
	}

	res, err := b.service.Process(ctx, perfil, texto)
	if err != nil {
		b.sendErrorMessage(chatID, "Error interno procesando tu mensaje")
		return
	}

	switch res.Estado {
	case service.EstadoRegistrada:
		t := res.Transaccion
		b.send(chatID, fmt.Sprintf("✔ Registrado %s de $%s correctamente.",
			t.Tipo, format.FormatearPesos(t.Cantidad, 0)))

	case service.EstadoNecesitaConfirmacion:
		t := res.Transaccion
		b.pendientes[chatID] = &pendiente{perfil: perfil, trans: t}

		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"🤔 Entendí un %s de $%s en %s el %s, pero no estoy seguro.\n¿Lo registro?",
			t.Tipo, format.FormatearPesos(t.Cantidad, 0), t.Categoria,
			t.Fecha.Format("02-01-2006")))
		msg.ReplyMarkup = getConfirmKeyboard()
		b.api.Send(msg)

	case service.EstadoRechazada:
		b.sendRechazo(chatID, res.Motivo)
	}
}

func (b *Bot) sendRechazo(chatID int64, motivo string) {
	switch motivo {
	case service.MotivoBloqueado:
		b.send(chatID, "⏳ Estás mandando muchos mensajes que no puedo interpretar. Esperá unos minutos y probá de nuevo.")
	case service.MotivoNoTransaccion:
		b.send(chatID, "Eso no parece una transacción ya realizada 🤔 Contame algo que hayas gastado o cobrado.")
	case service.MotivoCamposFaltantes, service.MotivoTipoInvalido, service.MotivoMontoInvalido:
		b.send(chatID, "Me falta información para registrarlo. Indicá el tipo (gasto o ingreso) y el monto.")
	case service.MotivoStorage:
		b.sendErrorMessage(chatID, "No pude guardar la transacción. Probá de nuevo más tarde.")
	default:
		b.send(chatID,
			"No pude entender tu mensaje.\n\nProbá con:\n"+
				"• 'ayer gasté 20000 en comida'\n"+
				"• '17-11-25 ingreso 150000 sueldo'")
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	switch callback.Data {
	case "confirmar":
		p, ok := b.pendientes[chatID]
		if !ok {
			b.send(chatID, "No tengo nada pendiente de confirmar.")
			break
		}
		delete(b.pendientes, chatID)

		if err := b.service.RecordConfirmed(context.Background(), p.perfil, p.trans); err != nil {
			b.sendErrorMessage(chatID, "No pude guardar la transacción. Probá de nuevo más tarde.")
			break
		}
		b.send(chatID, fmt.Sprintf("✔ Registrado %s de $%s correctamente.",
			p.trans.Tipo, format.FormatearPesos(p.trans.Cantidad, 0)))

	case "cancelar":
		delete(b.pendientes, chatID)
		b.send(chatID, "Listo, lo descarté 👌")
	}

	// Respondemos el callback para sacar el loading indicator
	callbackResponse := tgbotapi.NewCallback(callback.ID, "")
	b.api.Request(callbackResponse)

	return nil
}

// requirePerfil busca el perfil vinculado al chat; si no existe le explica al
// usuario cómo vincularse y devuelve nil
func (b *Bot) requirePerfil(chatID int64) *model.Profile {
	perfil, err := b.service.ProfileByChatID(context.Background(), chatID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			b.send(chatID,
				"¡Hola! 👋 Notamos que no estás vinculado al sistema ControlCash.\n"+
					"Enviá /vincular CODIGO para poder utilizar este bot.\n"+
					"Si no tenés una cuenta podés registrarte en la web de ControlCash.")
		} else {
			b.sendErrorMessage(chatID, "Error al buscar tu cuenta")
		}
		return nil
	}
	return perfil
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.api.Send(msg)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.send(chatID, "❌ "+text)
}
