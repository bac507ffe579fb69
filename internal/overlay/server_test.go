package overlay

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chippleh1392/audio-band/internal/source"
)

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUpdate(t *testing.T, conn *websocket.Conn) Update {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var u Update
	require.NoError(t, conn.ReadJSON(&u))
	return u
}

func TestNewConnectionGetsSnapshot(t *testing.T) {
	s := New(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	u := readUpdate(t, conn)
	assert.Equal(t, "stop", u.Type)
}

func TestBroadcastReachesClients(t *testing.T) {
	s := New(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	readUpdate(t, conn) // initial snapshot

	s.Broadcast(Update{Type: "change", Title: "Song", Playing: true})

	u := readUpdate(t, conn)
	assert.Equal(t, "change", u.Type)
	assert.Equal(t, "Song", u.Title)
	assert.True(t, u.Playing)
}

func TestSnapshotReflectsLastBroadcast(t *testing.T) {
	s := New(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Broadcast(Update{Type: "change", Title: "Earlier"})

	conn := dial(t, ts)
	u := readUpdate(t, conn)
	assert.Equal(t, "Earlier", u.Title)
}

// Connecting clients receive their snapshot while broadcasts are in flight;
// both paths write to the same connection, so they must serialize.
func TestBroadcastDuringConnects(t *testing.T) {
	s := New(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				s.Broadcast(Update{Type: "change", Title: "Song", PositionMS: int64(i)})
			}
		}
	}()

	for range 20 {
		conn := dial(t, ts)
		u := readUpdate(t, conn)
		assert.Contains(t, []string{"stop", "change"}, u.Type)
	}

	close(stop)
	wg.Wait()
}

func TestConsumeFoldsEvents(t *testing.T) {
	s := New(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	readUpdate(t, conn) // initial snapshot

	events := make(chan source.Event, 8)
	done := make(chan struct{})
	go func() {
		s.Consume(events)
		close(done)
	}()

	events <- source.TrackChange{Track: source.Track{
		ID:      "1",
		Title:   "Song",
		Artists: []string{"A", "B"},
		Album:   "Album",
	}}
	events <- source.PlayStateChange{Playing: true}
	events <- source.PositionChange{Position: 3 * time.Second, Length: time.Minute}
	close(events)
	<-done

	u := readUpdate(t, conn)
	assert.Equal(t, "change", u.Type)
	assert.Equal(t, "A, B", u.Artist)

	u = readUpdate(t, conn)
	assert.True(t, u.Playing)

	u = readUpdate(t, conn)
	assert.Equal(t, int64(3000), u.PositionMS)
	assert.Equal(t, int64(60000), u.LengthMS)
}
