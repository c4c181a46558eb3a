package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/wfc"
)

const writeWait = 10 * time.Second

// Stream upgrades to a websocket and sends every collapse and narrowing of
// the solve, followed by the saved layout or an error.
func (h LayoutHandler) Stream(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[GenerateLayoutDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// control frames are only processed while reading
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	send := func(msg StreamMessage) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	rules := h.gen.Tileset().Rules
	var sendErr error
	req := h.request(dto)
	req.Observer = func(p generator.Progress) {
		if sendErr != nil {
			return
		}
		sendErr = send(progressMessage(p, rules))
		if sendErr != nil {
			cancel()
		}
	}

	res, err := h.gen.Generate(ctx, req)
	if sendErr != nil {
		h.logger.Debug("stream client went away", "error", sendErr)
		return
	}
	if err != nil {
		h.logger.Debug("streamed generation failed", "error", err)
		h.closeWith(conn, send(StreamMessage{Type: "error", Error: err.Error()}))
		return
	}

	layout, err := h.persist(ctx, res)
	if err != nil {
		h.logger.Error("unable to save streamed layout", "error", err)
		h.closeWith(conn, send(StreamMessage{Type: "error", Error: "unable to save layout"}))
		return
	}

	h.closeWith(conn, send(StreamMessage{Type: "layout", Layout: NewLayoutDTO(layout)}))
}

func (h LayoutHandler) closeWith(conn *websocket.Conn, sendErr error) {
	if sendErr != nil {
		h.logger.Debug("unable to send final stream message", "error", sendErr)
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		h.logger.Debug("unable to close stream", "error", err)
	}
}

func progressMessage(p generator.Progress, rules *wfc.RuleTable) StreamMessage {
	members := p.Domain.Members()
	tiles := make([]wfc.Tile, len(members))
	for i, m := range members {
		tiles[i] = rules.Tile(m)
	}
	return StreamMessage{
		Type:    p.Kind.String(),
		Attempt: p.Attempt,
		Step:    p.Step,
		Row:     p.Row,
		Col:     p.Col,
		Tiles:   tiles,
	}
}
