package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"aura/internal/domain"
	"aura/internal/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	eventBuffer    = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves the event channel: clients start, stop and poll
// investigations and receive the events of the ones they follow.
type Handler struct {
	investigations ports.Investigations
	events         ports.EventSource
	catalog        ports.ToolCatalog
	perMinute      int
	log            *zap.SugaredLogger
}

func NewHandler(inv ports.Investigations, events ports.EventSource, catalog ports.ToolCatalog, commandsPerMinute int, log *zap.SugaredLogger) *Handler {
	if commandsPerMinute < 1 {
		commandsPerMinute = 60
	}
	return &Handler{investigations: inv, events: events, catalog: catalog, perMinute: commandsPerMinute, log: log}
}

type conn struct {
	ws      *websocket.Conn
	sub     ports.Subscription
	out     chan any
	ctx     context.Context
	limiter *rate.Limiter
}

// send queues a message for the writer; it gives up once the connection is gone.
func (c *conn) send(v any) {
	select {
	case c.out <- v:
	case <-c.ctx.Done():
	}
}

func (c *conn) reply(r Reply) {
	r.Timestamp = time.Now()
	c.send(r)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &conn{
		ws:      wsConn,
		sub:     h.events.Subscribe(eventBuffer),
		out:     make(chan any, 16),
		ctx:     ctx,
		limiter: rate.NewLimiter(rate.Limit(float64(h.perMinute)/60.0), max(1, h.perMinute/6)),
	}
	defer func() {
		cancel()
		c.sub.Close()
		wsConn.Close()
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(c)
		cancel()
		wsConn.Close()
	}()

	c.reply(Reply{Type: MsgWelcome, Message: "connected to AURA OSINT event channel", AvailableTools: len(h.catalog.List())})
	h.readLoop(c)
	cancel()
	<-writerDone
}

// writeLoop is the only writer of the connection.
func (h *Handler) writeLoop(c *conn) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	write := func(v any) bool {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteJSON(v); err != nil {
			h.log.Debugw("websocket write failed", "error", err)
			return false
		}
		return true
	}
	for {
		select {
		case <-c.ctx.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case ev, ok := <-c.sub.Events():
			if !ok || !write(ev) {
				return
			}
		case msg := <-c.out:
			if !write(msg) {
				return
			}
		case <-ping.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) readLoop(c *conn) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Infow("websocket read failed", "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		if c.ctx.Err() != nil {
			return
		}
		if !c.limiter.Allow() {
			c.reply(Reply{Type: MsgError, Error: "rate limit exceeded"})
			continue
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.reply(Reply{Type: MsgError, Error: "malformed message"})
			continue
		}
		h.dispatch(c, cmd)
	}
}

func (h *Handler) dispatch(c *conn, cmd Command) {
	switch cmd.Type {
	case CmdStartInvestigation:
		// investigation_started arrives through the subscription.
		if _, err := h.investigations.Start(c.ctx, ports.StartRequest{
			Target:     cmd.Target,
			TargetType: cmd.TargetType,
			Tools:      cmd.Tools,
			Options:    cmd.Options,
			Observer:   c.sub,
		}); err != nil {
			c.reply(errorReply(err))
		}

	case CmdStopInvestigation:
		st, err := h.investigations.Stop(c.ctx, cmd.InvestigationID)
		if err != nil {
			c.reply(statusError(cmd.InvestigationID, err))
			return
		}
		c.sub.Unfollow(cmd.InvestigationID)
		c.reply(Reply{Type: MsgInvestigationStopped, InvestigationID: cmd.InvestigationID, Investigation: &st})

	case CmdStatus, CmdSubscribe:
		st, err := h.investigations.Status(c.ctx, cmd.InvestigationID)
		if err != nil {
			c.reply(statusError(cmd.InvestigationID, err))
			return
		}
		if cmd.Type == CmdSubscribe {
			c.sub.Follow(cmd.InvestigationID)
		}
		c.reply(Reply{Type: MsgInvestigationStatus, InvestigationID: cmd.InvestigationID, Investigation: &st})

	case CmdExecuteTool:
		go h.executeTool(c, cmd)

	default:
		c.reply(Reply{Type: MsgError, Error: "unsupported message type: " + cmd.Type})
	}
}

// executeTool runs an ad-hoc tool without blocking the read loop.
func (h *Handler) executeTool(c *conn, cmd Command) {
	execID := "EXEC-" + uuid.NewString()
	target := cmd.Target
	if target == "" {
		target, _ = cmd.Parameters["target"].(string)
	}
	c.reply(Reply{Type: MsgToolExecutionStarted, ExecutionID: execID, Tool: cmd.Tool})
	res, err := h.investigations.ExecuteTool(c.ctx, ports.ExecuteRequest{ToolID: cmd.Tool, Target: target, Params: cmd.Parameters})
	switch {
	case err != nil:
		c.reply(Reply{Type: MsgToolExecutionError, ExecutionID: execID, Tool: cmd.Tool, Error: err.Error()})
	case res.Status == domain.ResultError:
		c.reply(Reply{Type: MsgToolExecutionError, ExecutionID: execID, Tool: cmd.Tool, Error: res.Error, Result: &res})
	default:
		c.reply(Reply{Type: MsgToolExecutionCompleted, ExecutionID: execID, Tool: cmd.Tool, Result: &res})
	}
}

func errorReply(err error) Reply {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Reply{Type: MsgError, Error: verr.Error(), Field: verr.Field}
	}
	return Reply{Type: MsgError, Error: err.Error()}
}

func statusError(id string, err error) Reply {
	if errors.Is(err, domain.ErrNotFound) {
		return Reply{Type: MsgInvestigationNotFound, InvestigationID: id}
	}
	r := errorReply(err)
	r.InvestigationID = id
	return r
}
