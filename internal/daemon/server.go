package daemon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/reign/calleditor/internal/calllog"
	"github.com/rs/zerolog"
)

// Backend is the store the daemon serves. *db.Store implements it.
type Backend interface {
	RecentCalls(ctx context.Context, limit int) ([]calllog.Entry, error)
	InsertCall(ctx context.Context, v calllog.Values) (string, error)
	Grants(ctx context.Context) (map[calllog.Capability]bool, error)
	SetGrants(ctx context.Context, grants map[calllog.Capability]bool) error
}

// Server answers NDJSON commands on a listener, one goroutine per
// connection. Requests on a connection are handled in order.
type Server struct {
	Backend Backend
	Log     zerolog.Logger
	Metrics *Metrics

	wg sync.WaitGroup
}

// Listen removes a stale socket file and listens on path.
func Listen(path string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return ln, nil
}

// Serve accepts connections until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.Backend == nil {
		return errors.New("daemon requires a backend")
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.Log.Info().Str("addr", ln.Addr().String()).Msg("daemon listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	s.Metrics.connected(1)
	defer s.Metrics.connected(-1)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		var cmd Command
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			resp = Response{Error: fmt.Sprintf("unmarshal command: %v", err)}
		} else {
			resp = s.dispatch(ctx, cmd)
		}
		s.Metrics.request(cmd.Cmd, resp.OK)

		data, err := json.Marshal(resp)
		if err != nil {
			s.Log.Error().Err(err).Msg("marshal response")
			return
		}
		if _, err := conn.Write(append(data, '\n')); err != nil {
			s.Log.Debug().Err(err).Msg("write response")
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, cmd Command) Response {
	log := s.Log.With().Str("cmd", cmd.Cmd).Logger()

	switch cmd.Cmd {
	case CmdPing:
		return Response{OK: true}

	case CmdQuery:
		if cmd.Limit <= 0 {
			return Response{Error: "query requires a positive limit"}
		}
		entries, err := s.Backend.RecentCalls(ctx, cmd.Limit)
		if err != nil {
			log.Error().Err(err).Msg("query failed")
			return Response{Error: err.Error()}
		}
		log.Debug().Int("count", len(entries)).Msg("query")
		return Response{OK: true, Entries: entries}

	case CmdInsert:
		if cmd.Values == nil {
			return Response{Error: "insert requires values"}
		}
		id, err := s.Backend.InsertCall(ctx, *cmd.Values)
		if err != nil {
			log.Error().Err(err).Msg("insert failed")
			return Response{Error: err.Error()}
		}
		log.Debug().Str("id", id).Msg("insert")
		return Response{OK: true, ID: id}

	case CmdGrants:
		grants, err := s.Backend.Grants(ctx)
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true, Grants: grants}

	case CmdSetGrants:
		if err := s.Backend.SetGrants(ctx, cmd.Grants); err != nil {
			return Response{Error: err.Error()}
		}
		log.Info().Interface("grants", cmd.Grants).Msg("grants recorded")
		return Response{OK: true}
	}

	return Response{Error: fmt.Sprintf("unknown command %q", cmd.Cmd)}
}
