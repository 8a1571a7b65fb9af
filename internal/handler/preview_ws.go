package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/service"
)

// WebSocket events. Client messages name a workspace operation; the server
// answers with EventPreview after every change and EventError on failure.
const (
	EventGet         = "get"
	EventUpdate      = "update"
	EventToggle      = "toggle"
	EventItemAdd     = "item.add"
	EventItemRemove  = "item.remove"
	EventItemUpdate  = "item.update"
	EventFieldAdd    = "field.add"
	EventFieldUpdate = "field.update"
	EventFieldRemove = "field.remove"
	EventSwitch      = "switch"
	EventReset       = "reset"
	EventPreview     = "preview"
	EventError       = "error"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 1 << 20
)

// WSMessage is one WebSocket frame in either direction.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

type wsTarget struct {
	ID         json.RawMessage          `json:"id"`
	Element    invoice.Element          `json:"element"`
	TemplateID string                   `json:"template_id"`
	Item       invoice.ItemPatch        `json:"item"`
	Field      invoice.CustomFieldPatch `json:"field"`
}

// PreviewHandler streams derived invoice data over WebSocket.
type PreviewHandler struct {
	workspaceService service.WorkspaceService
	hub              *service.PreviewHub
	upgrader         websocket.Upgrader
}

// NewPreviewHandler creates a new PreviewHandler. Upgrades are accepted from
// allowedOrigins and from same-origin requests.
func NewPreviewHandler(workspaceService service.WorkspaceService, hub *service.PreviewHub, allowedOrigins []string) *PreviewHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &PreviewHandler{
		workspaceService: workspaceService,
		hub:              hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

// done is closed by readPump and writerDone by writePump; reply gives up
// when either side has exited.
type previewClient struct {
	conn       *websocket.Conn
	userID     uuid.UUID
	send       chan WSMessage
	updates    <-chan invoice.InvoiceData
	done       chan struct{}
	writerDone chan struct{}
	h          *PreviewHandler
	log        zerolog.Logger
}

// Serve handles GET /api/v1/workspace/ws
// @Summary Live preview stream
// @Description Upgrades to a WebSocket. Send {event, data} frames naming a workspace operation; every change to the workspace is pushed as {event: "preview", data: InvoiceData}.
// @Tags workspace
// @Param access_token query string false "Access token when the Authorization header cannot be set"
// @Success 101
// @Failure 401 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /workspace/ws [get]
func (h *PreviewHandler) Serve(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		return
	}

	updates, unsubscribe := h.hub.Subscribe(userID)
	defer unsubscribe()

	client := &previewClient{
		conn:       conn,
		userID:     userID,
		send:       make(chan WSMessage, 16),
		updates:    updates,
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
		h:          h,
		log:        logger.WithComponent("preview_ws").With().Str("user_id", userID.String()).Logger(),
	}
	client.log.Debug().Msg("client connected")

	go client.writePump()
	client.dispatch(c.Request.Context(), WSMessage{Event: EventGet})
	client.readPump(c.Request.Context())
}

func (p *previewClient) readPump(ctx context.Context) {
	defer func() {
		close(p.done)
		_ = p.conn.Close()
		p.log.Debug().Msg("client disconnected")
	}()

	p.conn.SetReadLimit(wsMaxMessage)
	_ = p.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var msg WSMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		p.dispatch(ctx, msg)
	}
}

func (p *previewClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
		close(p.writerDone)
	}()

	for {
		var msg WSMessage
		select {
		case <-p.done:
			return
		case msg = <-p.send:
		case data, ok := <-p.updates:
			if !ok {
				// dropped by the hub as a slow subscriber
				_ = p.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow"), time.Now().Add(wsWriteWait))
				return
			}
			msg = previewMessage(data)
		case <-ticker.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			continue
		}

		_ = p.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := p.conn.WriteJSON(msg); err != nil {
			p.log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// dispatch applies one client message. Mutations reach every socket of the
// user through the hub; reads and errors are answered on this socket only.
func (p *previewClient) dispatch(ctx context.Context, msg WSMessage) {
	var t wsTarget
	if len(msg.Data) > 0 && msg.Event != EventUpdate && msg.Event != EventFieldAdd {
		if err := json.Unmarshal(msg.Data, &t); err != nil {
			p.reply(errorMessage("invalid data: " + err.Error()))
			return
		}
	}

	ws := p.h.workspaceService
	var err error
	switch msg.Event {
	case EventGet:
		var view *service.WorkspaceView
		if view, err = ws.Get(ctx, p.userID); err == nil {
			p.reply(previewMessage(view.Data))
		}
	case EventUpdate:
		var patch invoice.Patch
		if err = decode(msg.Data, &patch); err == nil {
			_, err = ws.UpdateTemplateState(ctx, p.userID, patch)
		}
	case EventToggle:
		_, err = ws.ToggleElement(ctx, p.userID, t.Element)
	case EventItemAdd:
		_, err = ws.AddInvoiceItem(ctx, p.userID)
	case EventItemRemove:
		var id int
		if err = decode(t.ID, &id); err == nil {
			_, err = ws.RemoveInvoiceItem(ctx, p.userID, id)
		}
	case EventItemUpdate:
		var id int
		if err = decode(t.ID, &id); err == nil {
			_, err = ws.UpdateInvoiceItem(ctx, p.userID, id, t.Item)
		}
	case EventFieldAdd:
		var input service.AddCustomFieldInput
		if err = decode(msg.Data, &input); err == nil {
			_, err = ws.AddCustomField(ctx, p.userID, input)
		}
	case EventFieldUpdate:
		var id string
		if err = decode(t.ID, &id); err == nil {
			_, err = ws.UpdateCustomField(ctx, p.userID, id, t.Field)
		}
	case EventFieldRemove:
		var id string
		if err = decode(t.ID, &id); err == nil {
			_, err = ws.RemoveCustomField(ctx, p.userID, id)
		}
	case EventSwitch:
		_, err = ws.SwitchTemplate(ctx, p.userID, t.TemplateID)
	case EventReset:
		_, err = ws.ResetTemplate(ctx, p.userID, t.TemplateID)
	default:
		p.reply(errorMessage(fmt.Sprintf("unknown event: %s", msg.Event)))
		return
	}
	if err == nil {
		return
	}

	var derr *decodeError
	if errors.As(err, &derr) {
		p.reply(errorMessage(derr.Error()))
		return
	}
	status, _, text := MapDomainError(err)
	if status >= 500 {
		p.log.Error().Err(err).Str("event", msg.Event).Msg("workspace operation failed")
	}
	p.reply(errorMessage(text))
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "invalid data: " + e.err.Error() }

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return &decodeError{errors.New("missing payload")}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &decodeError{err}
	}
	return nil
}

func (p *previewClient) reply(msg WSMessage) {
	select {
	case p.send <- msg:
	case <-p.done:
	case <-p.writerDone:
	}
}

func previewMessage(data invoice.InvoiceData) WSMessage {
	raw, _ := json.Marshal(data)
	return WSMessage{Event: EventPreview, Data: raw}
}

func errorMessage(text string) WSMessage {
	raw, _ := json.Marshal(map[string]string{"error": text})
	return WSMessage{Event: EventError, Data: raw}
}
