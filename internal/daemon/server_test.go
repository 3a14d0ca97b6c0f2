package daemon

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/reign/calleditor/internal/calllog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	mu      sync.Mutex
	entries []calllog.Entry
	grants  map[calllog.Capability]bool
	failing error
}

func (m *memBackend) RecentCalls(ctx context.Context, limit int) ([]calllog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return nil, m.failing
	}
	out := append([]calllog.Entry(nil), m.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memBackend) InsertCall(ctx context.Context, v calllog.Values) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := strconv.Itoa(len(m.entries) + 1)
	m.entries = append(m.entries, calllog.Entry{
		ID:       id,
		Number:   calllog.StringPtr(v.Number),
		Date:     v.Date,
		Type:     v.Type,
		Duration: v.Duration,
		Name:     calllog.StringPtr(v.CachedName),
	})
	return id, nil
}

func (m *memBackend) Grants(ctx context.Context) (map[calllog.Capability]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[calllog.Capability]bool{}
	for k, v := range m.grants {
		out[k] = v
	}
	return out, nil
}

func (m *memBackend) SetGrants(ctx context.Context, grants map[calllog.Capability]bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.grants == nil {
		m.grants = map[calllog.Capability]bool{}
	}
	for k, v := range grants {
		m.grants[k] = v
	}
	return nil
}

func startServer(t *testing.T, backend Backend) string {
	t.Helper()
	return startServerWithMetrics(t, backend, nil)
}

func startServerWithMetrics(t *testing.T, backend Backend, metrics *Metrics) string {
	t.Helper()

	sockPath := filepath.Join(t.TempDir(), "calleditor.sock")
	ln, err := Listen(sockPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{Backend: backend, Log: zerolog.Nop(), Metrics: metrics}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return sockPath
}

func TestServerInsertThenQuery(t *testing.T) {
	backend := &memBackend{}
	client, err := Connect(startServer(t, backend))
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	for _, date := range []int64{1000, 3000, 2000} {
		_, err := client.InsertCall(ctx, calllog.Values{Number: "555", Date: date, New: 1, Type: calllog.Incoming})
		require.NoError(t, err)
	}

	entries, err := client.RecentCalls(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3000), entries[0].Date)
	assert.Equal(t, int64(2000), entries[1].Date)
}

func TestServerGrants(t *testing.T) {
	client, err := Connect(startServer(t, &memBackend{}))
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	grants, err := client.Grants(ctx)
	require.NoError(t, err)
	assert.Empty(t, grants)

	require.NoError(t, client.SetGrants(ctx, map[calllog.Capability]bool{
		calllog.ReadCallLog:  true,
		calllog.WriteCallLog: false,
	}))

	grants, err = client.Grants(ctx)
	require.NoError(t, err)
	assert.True(t, grants[calllog.ReadCallLog])
	assert.False(t, grants[calllog.WriteCallLog])
}

func TestServerBackendFailure(t *testing.T) {
	client, err := Connect(startServer(t, &memBackend{failing: errors.New("database is locked")}))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.RecentCalls(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestServerRejectsUnknownCommand(t *testing.T) {
	client, err := Connect(startServer(t, &memBackend{}))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.SendCommand(Command{Cmd: "drop_table"})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown command")

	resp, err = client.SendCommand(Command{Cmd: CmdPing})
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestServerRequiresBackend(t *testing.T) {
	ln, err := Listen(filepath.Join(t.TempDir(), "x.sock"))
	require.NoError(t, err)
	defer ln.Close()

	srv := &Server{}
	assert.Error(t, srv.Serve(context.Background(), ln))
}

func TestServerCountsRequests(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	client, err := Connect(startServerWithMetrics(t, &memBackend{}, metrics))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.SendCommand(Command{Cmd: CmdPing})
	require.NoError(t, err)
	_, err = client.SendCommand(Command{Cmd: CmdQuery})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(CmdPing, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(CmdQuery, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.connections))
}
