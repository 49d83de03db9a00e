// Package ws is the reference real-time adapter: it bridges one WebSocket
// connection to the presence hub and the caller's push topic.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rehablink-io/Rehablink/internal/middleware"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
	"github.com/rehablink-io/Rehablink/internal/push"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// clientMessage is what the browser may send over the socket.
type clientMessage struct {
	Type     string `json:"type"`
	IsOnline *bool  `json:"is_online,omitempty"`
}

type Gateway struct {
	presence service.PresenceService
	ch       push.Channel
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewGateway(presence service.PresenceService, ch push.Channel, log *zap.Logger) *Gateway {
	return &Gateway{
		presence: presence,
		ch:       ch,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The identity middleware has already vetted the caller.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and serves the connection until either side
// closes it. Runs after IdentityAuth.
func (g *Gateway) Handle(c *gin.Context) {
	user, _ := c.MustGet(middleware.CtxUser).(*model.User)

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx := c.Request.Context()
	connID := uuid.NewString()

	msgs, cancel, err := g.ch.Subscribe(ctx, user.ID)
	if err != nil {
		g.log.Warn("push subscribe failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		_ = conn.Close()
		return
	}
	defer cancel()

	if err := g.presence.Connect(ctx, connID, user.ID, user.Role); err != nil {
		g.log.Warn("presence connect failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		_ = conn.Close()
		return
	}
	defer func() {
		// The request context is already cancelled once the socket closes;
		// the offline flip still has to reach storage and counterparts.
		dctx, done := context.WithTimeout(context.Background(), writeWait)
		defer done()
		if err := g.presence.Disconnect(dctx, connID); err != nil {
			g.log.Warn("presence disconnect failed", zap.String("conn_id", connID), zap.Error(err))
		}
	}()

	done := make(chan struct{})
	go g.writePump(conn, msgs, done)
	g.readPump(ctx, conn, user)
	close(done)
}

// readPump consumes client messages until the socket errors or closes. The
// only client verb is an explicit status flip.
func (g *Gateway) readPump(ctx context.Context, conn *websocket.Conn, user *model.User) {
	defer conn.Close()
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warn("websocket read failed", zap.String("user_id", user.ID.String()), zap.Error(err))
			}
			return
		}
		var msg clientMessage
		if err := sonic.Unmarshal(raw, &msg); err != nil {
			g.log.Warn("drop malformed client message", zap.Error(err))
			continue
		}
		if msg.Type == "update_status" && msg.IsOnline != nil {
			if err := g.presence.SetStatus(ctx, user.ID, user.Role, *msg.IsOnline); err != nil {
				g.log.Warn("set status failed", zap.String("user_id", user.ID.String()), zap.Error(err))
			}
		}
	}
}

// writePump forwards push messages to the socket and keeps it alive with
// pings.
func (g *Gateway) writePump(conn *websocket.Conn, msgs <-chan push.Message, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-msgs:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
				return
			}
			payload, err := sonic.Marshal(msg)
			if err != nil {
				g.log.Warn("marshal push message failed", zap.Error(err))
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
