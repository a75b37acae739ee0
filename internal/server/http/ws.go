package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type MessageType string

const (
	MessageTypeState        MessageType = "state"
	MessageTypeMove         MessageType = "move"
	MessageTypeSearch       MessageType = "search"
	MessageTypeSearchResult MessageType = "search_result"
	MessageTypeError        MessageType = "error"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, v any) Message {
	b, err := json.Marshal(v)
	if err != nil {
		return errorMessage(err)
	}
	return Message{Type: t, Payload: b}
}

func errorMessage(err error) Message {
	b, _ := json.Marshal(fiber.Map{"error": err.Error()})
	return Message{Type: MessageTypeError, Payload: b}
}

func (s *Server) requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// socketSession serves one websocket client of one game. Searches run on
// their own goroutines and report back through send.
type socketSession struct {
	s      *Server
	gameID string
	send   func(Message)
	wg     sync.WaitGroup
}

func (s *Server) handleSocket(conn *websocket.Conn) {
	var writeMu sync.Mutex
	sess := &socketSession{
		s:      s,
		gameID: conn.Params("id"),
		send: func(m Message) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(m); err != nil {
				log.Printf("ws write: %v", err)
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		sess.wg.Wait()
	}()

	if _, err := s.games.Get(sess.gameID); err != nil {
		sess.send(errorMessage(err))
		return
	}
	sess.dispatch(ctx, Message{Type: MessageTypeState})

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if mt != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.send(errorMessage(fmt.Errorf("bad message: %w", err)))
			continue
		}
		sess.dispatch(ctx, msg)
	}
}

func (ss *socketSession) dispatch(ctx context.Context, msg Message) {
	switch msg.Type {
	case MessageTypeState:
		g, err := ss.s.games.Get(ss.gameID)
		if err != nil {
			ss.send(errorMessage(err))
			return
		}
		ss.send(newMessage(MessageTypeState, snapshotToDTO(g.Snapshot())))

	case MessageTypeMove:
		var req PlayRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			ss.send(errorMessage(err))
			return
		}
		snap, err := ss.s.playNotation(ss.gameID, req)
		if err != nil {
			ss.send(errorMessage(err))
			return
		}
		ss.send(newMessage(MessageTypeState, snapshotToDTO(snap)))

	case MessageTypeSearch:
		var req AiRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			ss.send(errorMessage(err))
			return
		}
		ss.wg.Add(1)
		go func() {
			defer ss.wg.Done()
			resp, err := ss.s.think(ctx, ss.gameID, req)
			if err != nil {
				ss.send(errorMessage(err))
				return
			}
			ss.send(newMessage(MessageTypeSearchResult, resp))
		}()

	default:
		ss.send(errorMessage(fmt.Errorf("unknown message type %q", msg.Type)))
	}
}

func decodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	return nil
}
