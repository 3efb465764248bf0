package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// Frame types on the live feed.
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FramePing        = "ping"
	FramePong        = "pong"
	FrameAck         = "ack"
	FrameEvent       = "event"
	FrameError       = "error"
)

// Feed channels.
const (
	// ChannelResponses carries every produced response.
	ChannelResponses = "directive.response"

	// ChannelErrors carries only normalized error responses.
	ChannelErrors = "directive.error"
)

// subscriberBuffer is the number of frames queued per subscriber before
// new frames are dropped.
const subscriberBuffer = 256

var feedChannels = map[string]bool{
	ChannelResponses: true,
	ChannelErrors:    true,
}

// Frame is one message on the feed, in either direction.
//
// Clients send {"type":"subscribe","id":"1","channels":["directive.response"]}
// and receive an ack with the same id, then event frames naming the channel.
type Frame struct {
	Type     string   `json:"type"`
	ID       string   `json:"id,omitempty"`
	Channel  string   `json:"channel,omitempty"`
	Channels []string `json:"channels,omitempty"`
	Time     string   `json:"time,omitempty"`
	Payload  any      `json:"payload,omitempty"`
}

// OutcomeEvent is the payload of an event frame.
type OutcomeEvent struct {
	Namespace  string `json:"namespace"`
	Name       string `json:"name"`
	EndpointID string `json:"endpoint_id,omitempty"`
	Response   any    `json:"response"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Feed fans directive outcomes out to WebSocket subscribers.
type Feed struct {
	cfg    config.WebSocketConfig
	logger *logging.Logger

	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	feed *Feed
	conn *websocket.Conn
	out  chan []byte

	mu       sync.RWMutex
	closed   bool
	channels map[string]struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is token-gated, so any origin may connect.
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewFeed creates an empty feed.
func NewFeed(cfg config.WebSocketConfig, logger *logging.Logger) *Feed {
	return &Feed{
		cfg:         cfg,
		logger:      logger,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Run blocks until ctx is cancelled, then disconnects every subscriber.
func (f *Feed) Run(ctx context.Context) {
	<-ctx.Done()

	f.mu.Lock()
	subs := f.subscribers
	f.subscribers = make(map[*subscriber]struct{})
	f.mu.Unlock()

	for sub := range subs {
		sub.close()
		if sub.conn != nil {
			sub.conn.Close()
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

func (f *Feed) add(sub *subscriber) {
	f.mu.Lock()
	f.subscribers[sub] = struct{}{}
	n := len(f.subscribers)
	f.mu.Unlock()
	f.logger.Debug("feed subscriber connected", "subscribers", n)
}

func (f *Feed) remove(sub *subscriber) {
	f.mu.Lock()
	delete(f.subscribers, sub)
	n := len(f.subscribers)
	f.mu.Unlock()
	sub.close()
	f.logger.Debug("feed subscriber disconnected", "subscribers", n)
}

// Publish sends payload as an event frame to every subscriber of channel.
// Slow subscribers miss frames rather than block the caller.
func (f *Feed) Publish(channel string, payload any) {
	data, err := json.Marshal(Frame{
		Type:    FrameEvent,
		Channel: channel,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Payload: payload,
	})
	if err != nil {
		f.logger.Error("encoding feed event", "channel", channel, "error", err)
		return
	}

	f.mu.RLock()
	targets := make([]*subscriber, 0, len(f.subscribers))
	for sub := range f.subscribers {
		targets = append(targets, sub)
	}
	f.mu.RUnlock()

	for _, sub := range targets {
		if sub.wants(channel) && !sub.enqueue(data) {
			f.logger.Debug("feed subscriber lagging, frame dropped", "channel", channel)
		}
	}
}

// PublishOutcome sends o on ChannelResponses, and also on ChannelErrors
// when the response is a normalized error.
func (f *Feed) PublishOutcome(o skill.Outcome) {
	ev := OutcomeEvent{
		Namespace:  o.Namespace,
		Name:       o.Name,
		EndpointID: o.EndpointID,
		Response:   o.Response,
		DurationMS: o.Duration.Milliseconds(),
	}
	if o.Err != nil {
		ev.Error = o.Err.Error()
	}

	f.Publish(ChannelResponses, ev)
	if o.Response.IsError() {
		f.Publish(ChannelErrors, ev)
	}
}

// handleFeed upgrades to a WebSocket after checking the token query
// parameter against the directive token validator.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if err := s.tokens.Validate(r.Context(), r.URL.Query().Get("token")); err != nil {
		writeUnauthorized(w, "valid token query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sub := newSubscriber(s.feed, conn)
	s.feed.add(sub)

	go sub.writeLoop()
	go sub.readLoop()
}

func newSubscriber(f *Feed, conn *websocket.Conn, channels ...string) *subscriber {
	sub := &subscriber{
		feed:     f,
		conn:     conn,
		out:      make(chan []byte, subscriberBuffer),
		channels: make(map[string]struct{}, len(channels)),
	}
	for _, ch := range channels {
		sub.channels[ch] = struct{}{}
	}
	return sub
}

func (sub *subscriber) wants(channel string) bool {
	sub.mu.RLock()
	defer sub.mu.RUnlock()
	_, ok := sub.channels[channel]
	return ok
}

// enqueue reports false when the frame was dropped.
func (sub *subscriber) enqueue(data []byte) bool {
	sub.mu.RLock()
	defer sub.mu.RUnlock()
	if sub.closed {
		return false
	}
	select {
	case sub.out <- data:
		return true
	default:
		return false
	}
}

func (sub *subscriber) close() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.closed {
		sub.closed = true
		close(sub.out)
	}
}

func (sub *subscriber) deadline() time.Duration {
	cfg := sub.feed.cfg
	return time.Duration(cfg.PingInterval+cfg.PongTimeout) * time.Second
}

func (sub *subscriber) readLoop() {
	defer func() {
		sub.feed.remove(sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(int64(sub.feed.cfg.MaxMessageSize))
	//nolint:errcheck // a failed deadline surfaces as a read error
	sub.conn.SetReadDeadline(time.Now().Add(sub.deadline()))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(sub.deadline()))
	})

	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sub.feed.logger.Warn("feed read error", "error", err)
			}
			return
		}
		// Application frames count as liveness for clients that never
		// answer protocol pings.
		//nolint:errcheck // a failed deadline surfaces as a read error
		sub.conn.SetReadDeadline(time.Now().Add(sub.deadline()))
		sub.handleFrame(data)
	}
}

func (sub *subscriber) writeLoop() {
	cfg := sub.feed.cfg
	ticker := time.NewTicker(time.Duration(cfg.PingInterval) * time.Second)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	writeWait := time.Duration(cfg.PongTimeout) * time.Second
	write := func(kind int, data []byte) error {
		//nolint:errcheck // a failed deadline surfaces as a write error
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return sub.conn.WriteMessage(kind, data)
	}

	for {
		select {
		case data, ok := <-sub.out:
			if !ok {
				//nolint:errcheck // connection is closing anyway
				write(websocket.CloseMessage, nil)
				return
			}
			if err := write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (sub *subscriber) handleFrame(data []byte) {
	var in Frame
	if err := json.Unmarshal(data, &in); err != nil {
		sub.reply(Frame{Type: FrameError, Payload: "frame is not valid JSON"})
		return
	}

	switch in.Type {
	case FrameSubscribe, FrameUnsubscribe:
		for _, ch := range in.Channels {
			if !feedChannels[ch] {
				sub.reply(Frame{Type: FrameError, ID: in.ID, Payload: "unknown channel: " + ch})
				return
			}
		}
		sub.mu.Lock()
		for _, ch := range in.Channels {
			if in.Type == FrameSubscribe {
				sub.channels[ch] = struct{}{}
			} else {
				delete(sub.channels, ch)
			}
		}
		sub.mu.Unlock()
		sub.feed.logger.Debug("feed subscription changed", "type", in.Type, "channels", in.Channels)
		sub.reply(Frame{Type: FrameAck, ID: in.ID, Channels: in.Channels})
	case FramePing:
		sub.reply(Frame{Type: FramePong, ID: in.ID})
	default:
		sub.reply(Frame{Type: FrameError, ID: in.ID, Payload: "unknown frame type: " + in.Type})
	}
}

func (sub *subscriber) reply(f Frame) {
	f.Time = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	sub.enqueue(data)
}
