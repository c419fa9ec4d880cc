package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"memematch-service/internal/relay"
)

// WSHandler bridges websocket connections onto the broadcast relay.
type WSHandler struct {
	relay    *relay.Relay
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(r *relay.Relay, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		relay: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "ws").Logger(),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs the relay protocol: a snapshot of
// recent results on connect, fan-out events as they happen, and
// quizResult/requestStats frames from the client. The subscription is
// cancelled on every disconnect path.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	snapshot, events, cancel := h.relay.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: ev.Name, Payload: ev.Result}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// Late joiners see the history up to this point.
	send <- outboundMessage[any]{Type: "recentResults", Payload: snapshot}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "quizResult":
			var sub relay.Submission
			if err := json.Unmarshal(inbound.Payload, &sub); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid result payload"}}
				continue
			}
			// The stamped record comes back through this connection's
			// own subscription, like every other listener's.
			h.relay.Submit(sub)
		case "requestStats":
			// Stats go to the requesting connection only.
			send <- outboundMessage[any]{Type: "stats", Payload: h.relay.Stats()}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}
