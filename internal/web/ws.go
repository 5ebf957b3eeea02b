package web

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPingEvery    = 30 * time.Second
)

// adminWS streams dashboard events to an authenticated admin. The guard has
// already validated the session cookie; the socket lives until the client
// goes away or the server shuts down.
func (h *Handler) adminWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Info("web.ws.accept.fail", "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	// We never expect inbound data frames; CloseRead keeps control frames
	// flowing and cancels the context when the peer disconnects.
	ctx := conn.CloseRead(r.Context())

	events, cancel := h.hub.Subscribe()
	defer cancel()

	ping := time.NewTicker(wsPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		case <-ping.C:
			pctx, pcancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Ping(pctx)
			pcancel()
			if err != nil {
				return
			}
		case ev, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "shutdown")
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := wsjson.Write(wctx, conn, ev)
			wcancel()
			if err != nil {
				h.log.Info("web.ws.write.fail", "err", err)
				return
			}
		}
	}
}
