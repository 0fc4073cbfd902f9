// Package notify envía avisos operativos del almacén a un grupo de Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/pkg/config"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

const defaultBaseURL = "https://api.telegram.org"

var (
	_ inventory.Notifier         = (*Telegram)(nil)
	_ devicesync.FailureNotifier = (*Telegram)(nil)
)

// ErrMissingCredentials falta el token del bot o el chat destino.
var ErrMissingCredentials = errors.New("telegram bot token y chat id requeridos")

// APIError respuesta de error de la API de Telegram.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error: %d: %s", e.StatusCode, e.Description)
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

type field struct {
	name, value string
}

// Telegram cliente de avisos. Un mismo aviso (misma clave) no se repite dentro de la ventana
// de deduplicación: un terminal que reintenta en bucle no inunda el grupo.
type Telegram struct {
	http   *resty.Client
	token  string
	chatID string
	dedup  time.Duration
	log    *logger.Logger
	now    func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

// NewTelegram construye el cliente. Usar solo si cfg.Enabled().
func NewTelegram(cfg config.NotifyConfig, log *logger.Logger) (*Telegram, error) {
	if !cfg.Enabled() {
		return nil, ErrMissingCredentials
	}
	if log == nil {
		log = logger.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(1).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == 429
		})

	return &Telegram{
		http:   httpClient,
		token:  cfg.BotToken,
		chatID: cfg.ChatID,
		dedup:  cfg.DedupWindow,
		log:    log,
		now:    time.Now,
		sent:   make(map[string]time.Time),
	}, nil
}

// OrderCompleted avisa que una recepción completó la orden de compra.
func (t *Telegram) OrderCompleted(ctx context.Context, ev inventory.OrderCompletion) error {
	return t.send(ctx, "", "✅ ORDEN DE COMPRA COMPLETADA",
		fmt.Sprintf("La recepción <b>#%d</b> completó la orden <b>#%d</b>.", ev.ReceiptID, ev.PurchaseOrderID),
		[]field{
			{"Orden", fmt.Sprintf("#%d", ev.PurchaseOrderID)},
			{"Recepción", fmt.Sprintf("#%d", ev.ReceiptID)},
			{"Operario", ev.Actor},
		})
}

// LargeTransfer avisa de un traslado que alcanzó el umbral configurado.
func (t *Telegram) LargeTransfer(ctx context.Context, ev inventory.LargeTransfer) error {
	fields := []field{
		{"Referencia", ev.TransferRef},
		{"Modo", ev.Mode},
		{"Origen", fmt.Sprintf("%d", ev.SourceLocationID)},
		{"Destino", fmt.Sprintf("%d", ev.TargetLocationID)},
		{"Cantidad", ev.TotalQuantity.String()},
		{"Líneas", fmt.Sprintf("%d", ev.Lines)},
		{"Operario", ev.Actor},
	}
	if ev.Container != "" {
		fields = append(fields, field{"Pallet", ev.Container})
	}
	return t.send(ctx, "", "📦 TRASLADO GRANDE",
		fmt.Sprintf("<b>%s</b> trasladó %s unidades.", html.EscapeString(ev.Actor), ev.TotalQuantity.String()),
		fields)
}

// OperationFailed avisa de una operación de terminal rechazada. Se deduplica por
// operario, tipo y mensaje.
func (t *Telegram) OperationFailed(ctx context.Context, ev devicesync.OperationFailure) error {
	key := strings.Join([]string{"failed", ev.Actor, ev.Type, ev.Message}, "|")
	return t.send(ctx, key, "⚠️ OPERACIÓN DE TERMINAL FALLIDA",
		fmt.Sprintf("El operario <b>%s</b> envió una operación <b>%s</b> que no se pudo aplicar.",
			html.EscapeString(orUnknown(ev.Actor)), html.EscapeString(ev.Type)),
		[]field{
			{"Error", ev.Message},
			{"Código", ev.ErrorCode},
			{"ID local", fmt.Sprintf("%d", ev.LocalID)},
		})
}

// send publica el mensaje. dedupKey vacío no deduplica.
func (t *Telegram) send(ctx context.Context, dedupKey, subject, message string, fields []field) error {
	if dedupKey != "" && !t.claim(dedupKey) {
		t.log.Debug().Str("key", dedupKey).Msg("aviso duplicado omitido")
		return nil
	}

	var out, apiErr apiResponse
	resp, err := t.http.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			ChatID:                t.chatID,
			Text:                  t.format(subject, message, fields),
			ParseMode:             "HTML",
			DisableWebPagePreview: true,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/bot" + t.token + "/sendMessage")
	if err != nil {
		t.release(dedupKey)
		return fmt.Errorf("telegram request: %w", err)
	}
	if resp.IsError() || !out.OK {
		t.release(dedupKey)
		desc := apiErr.Description
		if desc == "" {
			desc = strings.TrimSpace(resp.String())
		}
		return &APIError{StatusCode: resp.StatusCode(), Description: desc}
	}
	return nil
}

func (t *Telegram) format(subject, message string, fields []field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n%s\n", html.EscapeString(subject), message)
	if len(fields) > 0 {
		b.WriteString("\n<b>📊 Detalles:</b>\n")
		for _, f := range fields {
			if f.value == "" {
				continue
			}
			fmt.Fprintf(&b, "• <b>%s:</b> %s\n", html.EscapeString(f.name), html.EscapeString(f.value))
		}
	}
	fmt.Fprintf(&b, "\n<i>🕐 %s</i>", t.now().Format("2006-01-02 15:04:05"))
	return b.String()
}

// claim reserva la clave si no se envió dentro de la ventana.
func (t *Telegram) claim(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for k, at := range t.sent {
		if now.Sub(at) >= t.dedup {
			delete(t.sent, k)
		}
	}
	if _, ok := t.sent[key]; ok {
		return false
	}
	t.sent[key] = now
	return true
}

// release libera la clave si el envío falló, para que el próximo intento sí salga.
func (t *Telegram) release(key string) {
	if key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sent, key)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "desconocido"
	}
	return s
}
