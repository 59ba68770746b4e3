package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"solarpulse/backend/services/energy-service/internal/access"
	"solarpulse/backend/services/energy-service/internal/auth"
	"solarpulse/backend/services/energy-service/internal/models"
)

// RealtimeSource supplies the sample pushed on every tick.
type RealtimeSource interface {
	Realtime(ctx context.Context, requester auth.Identity, subjectID string) (models.TelemetrySample, error)
}

const defaultWriteTimeout = 10 * time.Second

// LiveFeed upgrades dashboard connections to WebSockets and pushes the
// latest realtime sample on a fixed interval.
type LiveFeed struct {
	source   RealtimeSource
	interval time.Duration
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewLiveFeed builds the feed handler.
func NewLiveFeed(source RealtimeSource, interval time.Duration, logger *zap.Logger) *LiveFeed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &LiveFeed{
		source:   source,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP handles GET /api/energy/live/{client_id}. Authorization is
// decided before the upgrade so a denied caller gets a plain 403.
func (f *LiveFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	subjectID := r.PathValue("client_id")
	if subjectID == "" {
		subjectID = identity.SubjectID
	}
	if err := access.Authorize(identity, subjectID); err != nil {
		http.Error(w, "not authorized", http.StatusForbidden)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	go f.readUntilClose(conn, cancel)
	f.push(ctx, conn, identity, subjectID)
}

// readUntilClose drains control frames so close events are noticed.
func (f *LiveFeed) readUntilClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *LiveFeed) push(ctx context.Context, conn *websocket.Conn, identity auth.Identity, subjectID string) {
	defer conn.Close()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		sample, err := f.source.Realtime(ctx, identity, subjectID)
		if err != nil {
			f.logger.Warn("live feed sample fetch failed",
				zap.String("subject_id", subjectID), zap.Error(err))
			return
		}

		conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout))
		if err := conn.WriteJSON(sample); err != nil {
			f.logger.Info("live feed connection closed",
				zap.String("subject_id", subjectID), zap.Error(err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
