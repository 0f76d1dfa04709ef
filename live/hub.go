package live

import (
	"encoding/json"
	"log/slog"

	"github.com/playwise/tournament-engine/models"
)

// Event types pushed to subscribed clients.
const (
	EventFixturesGenerated  = "FIXTURES_GENERATED"
	EventResultRecorded     = "RESULT_RECORDED"
	EventResultUndone       = "RESULT_UNDONE"
	EventRoundAdvanced      = "ROUND_ADVANCED"
	EventTournamentFinished = "TOURNAMENT_FINISHED"
)

// Message is the envelope sent over a websocket connection.
type Message struct {
	Type         string      `json:"type"`
	TournamentID string      `json:"tournament_id"`
	Payload      interface{} `json:"payload,omitempty"`
}

// Hub fans events out to websocket clients grouped into one room per
// tournament. Services publish through Broadcast; the HTTP layer registers
// and unregisters clients as connections come and go.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound

	rooms  map[string]map[*Client]bool
	logger *slog.Logger
}

type outbound struct {
	room string
	data []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 64),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run owns the room bookkeeping; it must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("websocket client joined",
				slog.String("room", client.room),
				slog.Int("clients", len(h.rooms[client.room])))

		case client := <-h.unregister:
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					client.closeSend()
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.rooms[msg.room], client)
					client.closeSend()
				}
			}
		}
	}
}

// Broadcast publishes an event to every client watching the tournament.
func (h *Hub) Broadcast(eventType, tournamentID string, payload interface{}) {
	data, err := json.Marshal(Message{Type: eventType, TournamentID: tournamentID, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal websocket message",
			slog.String("type", eventType), slog.Any("error", err))
		return
	}
	h.broadcast <- outbound{room: tournamentID, data: data}
}

// BroadcastReport is a convenience for the result processor's report.
func (h *Hub) BroadcastReport(tournamentID string, report interface{}) {
	h.Broadcast(EventResultRecorded, tournamentID, report)
}

// BroadcastStandings pushes a fresh standings view, typically after any
// mutation of the aggregate.
func (h *Hub) BroadcastStandings(t *models.Tournament, eventType string) {
	h.Broadcast(eventType, t.ID, map[string]interface{}{
		"current_round": t.CurrentRound,
		"finished":      t.Finished,
		"standings":     t.Standings(),
	})
}
