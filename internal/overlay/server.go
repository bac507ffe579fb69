// Package overlay broadcasts now-playing state as JSON over WebSocket so
// browser-source overlays (OBS and the like) can mirror the widget.
package overlay

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chippleh1392/audio-band/internal/source"
)

// Update is the wire format pushed to overlay clients.
type Update struct {
	Type       string `json:"type"` // "change" or "stop"
	Title      string `json:"title,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Album      string `json:"album,omitempty"`
	AlbumArt   string `json:"albumArt,omitempty"`
	Playing    bool   `json:"playing"`
	PositionMS int64  `json:"position_ms"`
	LengthMS   int64  `json:"length_ms"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// No origin means a native client such as OBS.
		if origin == "" {
			return true
		}
		originURL, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if originURL.Host == r.Host {
			return true
		}
		return strings.HasPrefix(originURL.Host, "localhost:") ||
			strings.HasPrefix(originURL.Host, "127.0.0.1:")
	},
}

// client pairs a connection with a write mutex. gorilla/websocket allows a
// single concurrent writer per connection, and both the snapshot replay and
// Broadcast write, so every write goes through client.write.
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(u Update) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(u)
}

// Server holds the connection set and the last pushed update, which is
// replayed to every new connection.
type Server struct {
	mu    sync.RWMutex
	conns map[*client]bool
	last  Update
	log   *zap.SugaredLogger
}

func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		conns: make(map[*client]bool),
		last:  Update{Type: "stop"},
		log:   log.Sugar(),
	}
}

// Handler upgrades the connection, replays the current state and then holds
// the connection open, discarding anything the client sends.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warnw("websocket upgrade failed", "error", err)
			return
		}

		c := &client{conn: conn}
		s.mu.Lock()
		snapshot := s.last
		s.conns[c] = true
		s.mu.Unlock()

		if err := c.write(snapshot); err != nil {
			s.drop(c)
			return
		}
		s.log.Infow("overlay client connected", "remote", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					s.log.Debugw("overlay client read error", "error", err)
				}
				s.drop(c)
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	c.conn.Close()
}

// Broadcast stores u as the current state and pushes it to every client.
func (s *Server) Broadcast(u Update) {
	s.mu.Lock()
	s.last = u
	conns := make([]*client, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.write(u); err != nil {
			s.log.Debugw("overlay write failed, dropping client", "error", err)
			s.drop(c)
		}
	}
}

// Consume folds watcher events into updates and broadcasts each one. It
// returns when events closes.
func (s *Server) Consume(events <-chan source.Event) {
	s.mu.RLock()
	cur := s.last
	s.mu.RUnlock()

	for ev := range events {
		switch ev := ev.(type) {
		case source.TrackChange:
			if ev.Track.Title == "" && ev.Track.ID == "" {
				cur = Update{Type: "stop"}
			} else {
				cur.Type = "change"
				cur.Title = ev.Track.Title
				cur.Artist = strings.Join(ev.Track.Artists, ", ")
				cur.Album = ev.Track.Album
				cur.AlbumArt = ev.Track.ArtURL
				cur.PositionMS = 0
			}
		case source.PlayStateChange:
			cur.Playing = ev.Playing
		case source.PositionChange:
			cur.PositionMS = ev.Position.Milliseconds()
			cur.LengthMS = ev.Length.Milliseconds()
		default:
			continue
		}
		s.Broadcast(cur)
	}
}

// ListenAndServe runs the overlay endpoint at addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("overlay shutdown", "error", err)
		}
	}()

	s.log.Infow("overlay server listening", "addr", addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
