package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

const writeWait = 10 * time.Second

// Hub fans market ticks out to every connected client and balance
// updates out to the owning user's connections only.
type Hub struct {
	Clients    map[string]map[*websocket.Conn]bool
	Broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	Logger     zerolog.Logger

	// pingPeriod spaces the keepalive pings Run sends on every
	// connection; zero disables them.
	pingPeriod time.Duration
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
}

type Message struct {
	Type    string           `json:"type"`
	Coins   []domain.Coin    `json:"coins,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`

	// userID targets a single user's connections; empty goes to all.
	userID string
}

func NewHub(pingPeriod time.Duration, logger zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[string]map[*websocket.Conn]bool),
		Broadcast:  make(chan Message, 100),
		Register:   make(chan *Client, 100),
		Unregister: make(chan *Client, 100),
		Logger:     logger,
		pingPeriod: pingPeriod,
	}
}

// NotifyBalance satisfies the services' BalanceNotifier.
func (h *Hub) NotifyBalance(userID string, balance decimal.Decimal) {
	select {
	case h.Broadcast <- Message{Type: "balance", Balance: &balance, userID: userID}:
	default:
		h.Logger.Warn().Str("user_id", userID).Msg("WebSocket broadcast channel full, dropping balance update")
	}
}

// NotifyMarket pushes a refreshed market snapshot to every client.
func (h *Hub) NotifyMarket(coins []domain.Coin) {
	select {
	case h.Broadcast <- Message{Type: "market_tick", Coins: coins}:
	default:
		h.Logger.Warn().Msg("WebSocket broadcast channel full, dropping market tick")
	}
}

func (h *Hub) Run() {
	var pings <-chan time.Time
	if h.pingPeriod > 0 {
		ticker := time.NewTicker(h.pingPeriod)
		defer ticker.Stop()
		pings = ticker.C
	}

	for {
		select {
		case client := <-h.Register:
			if h.Clients[client.UserID] == nil {
				h.Clients[client.UserID] = make(map[*websocket.Conn]bool)
			}
			h.Clients[client.UserID][client.Conn] = true
			h.Logger.Info().
				Str("user_id", client.UserID).
				Int("connection_count", len(h.Clients[client.UserID])).
				Msg("WebSocket client registered")

		case client := <-h.Unregister:
			if clients, ok := h.Clients[client.UserID]; ok {
				delete(clients, client.Conn)
				if len(clients) == 0 {
					delete(h.Clients, client.UserID)
				}
				client.Conn.Close()
				h.Logger.Info().
					Str("user_id", client.UserID).
					Int("connection_count", len(clients)).
					Msg("WebSocket client unregistered")
			}

		case message := <-h.Broadcast:
			h.deliver(message)

		case <-pings:
			h.pingAll()
		}
	}
}

// pingAll sends a keepalive ping on every connection; peers that no
// longer answer the write are dropped.
func (h *Hub) pingAll() {
	for _, conns := range h.Clients {
		for conn := range conns {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Logger.Warn().Err(err).Msg("WebSocket ping failed, dropping connection")
				conn.Close()
				h.removeConn(conn)
			}
		}
	}
}

func (h *Hub) deliver(message Message) {
	targets := make([]*websocket.Conn, 0)
	if message.userID != "" {
		for conn := range h.Clients[message.userID] {
			targets = append(targets, conn)
		}
	} else {
		for _, conns := range h.Clients {
			for conn := range conns {
				targets = append(targets, conn)
			}
		}
	}

	for _, conn := range targets {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(message); err != nil {
			h.Logger.Warn().Err(err).Str("type", message.Type).Msg("WebSocket write failed, dropping connection")
			conn.Close()
			h.removeConn(conn)
		}
	}
}

func (h *Hub) removeConn(conn *websocket.Conn) {
	for userID, conns := range h.Clients {
		if conns[conn] {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.Clients, userID)
			}
			return
		}
	}
}
