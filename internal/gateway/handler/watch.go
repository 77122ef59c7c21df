package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	dashsvc "flowlens/internal/gateway/service/dashboard"
)

// WatchHandler streams synthesis progress events over a websocket. Clients
// optionally filter to a single dashboard id via the ?id query parameter.
type WatchHandler struct {
	svc *dashsvc.Service
}

func NewWatchHandler(svc *dashsvc.Service) *WatchHandler {
	return &WatchHandler{svc: svc}
}

const (
	watchWSWriteWait = 10 * time.Second
	watchWSPongWait  = 60 * time.Second
	watchWSPingEvery = (watchWSPongWait * 9) / 10
)

var watchWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type watchWSOutbound struct {
	Type        string `json:"type"`
	DashboardID string `json:"dashboardId,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Message     string `json:"message,omitempty"`
	At          string `json:"at,omitempty"`
}

func (h *WatchHandler) HandleWatchWS(w http.ResponseWriter, r *http.Request) {
	filterID := strings.TrimSpace(r.URL.Query().Get("id"))

	conn, err := watchWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(watchWSPongWait)); err != nil {
		log.Printf("watch ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchWSPongWait))
	})

	writeCh := make(chan watchWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(watchWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events, unsubscribe := h.svc.Subscribe()
	defer unsubscribe()

	pushWatchWS(writeCh, watchWSOutbound{Type: "subscribed", DashboardID: filterID})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if filterID != "" && ev.DashboardID != filterID {
					continue
				}
				pushWatchWS(writeCh, watchWSOutbound{
					Type:        "progress",
					DashboardID: ev.DashboardID,
					Stage:       string(ev.Stage),
					Message:     ev.Message,
					At:          ev.At.Format(time.RFC3339Nano),
				})
			}
		}
	}()

	// The read loop exists to detect disconnects and serve pongs; watch
	// clients send nothing else.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			<-writerDone
			return
		}
	}
}

func pushWatchWS(writeCh chan watchWSOutbound, out watchWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	// Drop the oldest queued event to make room for the newest.
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
