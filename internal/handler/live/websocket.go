package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ayanpandit/PrepTera/internal/frontend"
	"github.com/ayanpandit/PrepTera/internal/metrics"
	"github.com/ayanpandit/PrepTera/internal/middleware"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/voice"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 54 * time.Second
)

// Interview modes selected by the config message.
const (
	ModeText  = "text"
	ModeVoice = "voice"
)

// Handler runs interviews over a websocket. The browser provides speech
// synthesis and recognition; the interview loop itself runs server-side.
type Handler struct {
	api      frontend.API
	upgrader websocket.Upgrader
}

// New creates the live handler. Browser origins are checked against allowedOrigins.
func New(api frontend.API, allowedOrigins []string) *Handler {
	origins := append([]string(nil), allowedOrigins...)
	return &Handler{
		api: api,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(origins, r.Header.Get("Origin"))
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts GET /live.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ConfigMessage starts the interview.
type ConfigMessage struct {
	CandidateName string `json:"candidateName"`
	JobRole       string `json:"jobRole"`
	Domain        string `json:"domain"`
	InterviewType string `json:"interviewType"`
	Mode          string `json:"mode"`
}

// AnswerMessage carries a typed answer.
type AnswerMessage struct {
	Text string `json:"text"`
}

// PermissionMessage reports the outcome of a microphone permission prompt.
type PermissionMessage struct {
	Granted bool `json:"granted"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// QuestionEvent announces the question being asked.
type QuestionEvent struct {
	Number int    `json:"number"`
	Total  int    `json:"total"`
	Text   string `json:"text"`
}

// connection holds one websocket and the inbound events the remote speech
// providers wait on.
type connection struct {
	id string
	ws *websocket.Conn

	writeMu sync.Mutex

	permissions      chan bool
	transcripts      chan voice.Transcript
	recognitionEnded chan struct{}
	speechEnded      chan struct{}
	answers          chan string
}

func newConnection(ws *websocket.Conn) *connection {
	return &connection{
		id:               uuid.NewString(),
		ws:               ws,
		permissions:      make(chan bool, 1),
		transcripts:      make(chan voice.Transcript, 16),
		recognitionEnded: make(chan struct{}, 1),
		speechEnded:      make(chan struct{}, 1),
		answers:          make(chan string, 4),
	}
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	c := newConnection(ws)
	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()
	log.Printf("[live] new connection id=%s", c.id)

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.pingLoop(ctx)
	}()

	c.send("connected", map[string]string{"connectionId": c.id})

	started := false
	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[live] read error id=%s: %v", c.id, err)
			}
			log.Printf("[live] connection closed id=%s", c.id)
			return
		}
		ws.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.Type == "config" {
			if started {
				c.sendError("Interview already in progress")
				continue
			}
			var cfg ConfigMessage
			if err := json.Unmarshal(msg.Data, &cfg); err != nil {
				c.sendError("invalid config message")
				continue
			}
			started = true
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.runInterview(ctx, c, cfg)
			}()
			continue
		}

		c.dispatch(msg)
	}
}

// dispatch routes an inbound event to whichever provider is waiting for it.
func (c *connection) dispatch(msg inboundMessage) {
	switch msg.Type {
	case "answer":
		var payload AnswerMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError("invalid answer message")
			return
		}
		offer(c.answers, payload.Text, "answer")
	case "transcript":
		var payload voice.Transcript
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError("invalid transcript message")
			return
		}
		offer(c.transcripts, payload, "transcript")
	case "permission":
		var payload PermissionMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError("invalid permission message")
			return
		}
		offer(c.permissions, payload.Granted, "permission")
	case "recognitionEnded":
		offer(c.recognitionEnded, struct{}{}, "recognitionEnded")
	case "speechEnded":
		offer(c.speechEnded, struct{}{}, "speechEnded")
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

func offer[T any](ch chan T, v T, kind string) {
	select {
	case ch <- v:
	default:
		log.Printf("[live] dropping %s event, nobody is waiting", kind)
	}
}

func (h *Handler) runInterview(ctx context.Context, c *connection, cfg ConfigMessage) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = ModeText
	}

	listener := &liveListener{conn: c}
	driver := &frontend.Interview{
		API:      h.api,
		Listener: listener,
		Observer: &observer{conn: c},
	}
	if mode == ModeVoice {
		listener.voice = voice.NewVoiceListener(&remoteRecognizer{conn: c}, 0)
		driver.Speaker = &remoteSpeaker{conn: c}
	}

	log.Printf("[live] id=%s starting %s interview role=%q domain=%q", c.id, mode, cfg.JobRole, cfg.Domain)
	_, err := driver.Run(ctx, interview.StartRequest{
		CandidateName: cfg.CandidateName,
		JobRole:       cfg.JobRole,
		Domain:        cfg.Domain,
		InterviewType: cfg.InterviewType,
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("[live] id=%s interview ended with error: %v", c.id, err)
	}
	if ctx.Err() != nil {
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "interview finished"),
		time.Now().Add(writeTimeout))
}

func (c *connection) send(kind string, data interface{}) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	msg := outgoingMessage{Type: kind, Data: data, Timestamp: time.Now().UnixMilli()}
	if err := c.ws.WriteJSON(msg); err != nil {
		log.Printf("[live] failed to send %s id=%s: %v", kind, c.id, err)
	}
}

func (c *connection) sendError(message string) {
	c.send("error", map[string]string{"message": message})
}

func (c *connection) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
