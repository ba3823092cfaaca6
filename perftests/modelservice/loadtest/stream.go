package loadtest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/modelcheck/check"
)

const (
	subscriberBuffer = 256
	writeWait        = 10 * time.Second
)

// CheckMessage is the JSON pushed to stream subscribers for every recorded check.
type CheckMessage struct {
	Group  string `json:"group"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Panic  string `json:"panic,omitempty"`
	Time   string `json:"time"`
}

// streamHub fans check results out to websocket subscribers. A subscriber that
// falls behind by more than subscriberBuffer messages drops messages.
type streamHub struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	subs   map[chan CheckMessage]struct{}
	closed bool
	gauge  func(int)
}

func newStreamHub() *streamHub {
	return &streamHub{
		upgrader: websocket.Upgrader{
			CheckOrigin:      func(r *http.Request) bool { return true },
			HandshakeTimeout: 10 * time.Second,
		},
		subs: make(map[chan CheckMessage]struct{}),
	}
}

// CheckRecorded implements check.Listener.
func (h *streamHub) CheckRecorded(r check.Result) {
	msg := CheckMessage{
		Group:  r.Group,
		Name:   r.Name,
		Passed: r.Passed,
		Panic:  r.Panic,
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			log.Debugf("stream subscriber is behind, dropping %q", r.Name)
		}
	}
}

func (h *streamHub) subscribe() chan CheckMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan CheckMessage, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}
	h.report()
	return ch
}

func (h *streamHub) unsubscribe(ch chan CheckMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
		h.report()
	}
}

func (h *streamHub) report() {
	if h.gauge != nil {
		h.gauge(len(h.subs))
	}
}

func (h *streamHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.report()
}

// ServeHTTP upgrades the request and streams check messages until either side closes.
func (h *streamHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so no result recorded after the
	// client sees the upgrade is missed.
	ch := h.subscribe()
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("stream upgrade failed: %v", err)
		h.unsubscribe(ch)
		return
	}
	defer conn.Close()

	// The read loop only notices the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "load tester closed"))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Debugf("stream write: %v", err)
				h.unsubscribe(ch)
				return
			}
		case <-done:
			h.unsubscribe(ch)
			return
		}
	}
}
