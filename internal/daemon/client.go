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
	"time"

	"github.com/goccy/go-json"
	"github.com/reign/calleditor/internal/calllog"
)

// SocketPath returns the default daemon socket path.
func SocketPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".calleditor", "calleditor.sock")
}

// Client talks to the calleditor daemon over a Unix socket. It implements
// repository.Provider and permission.GrantStore.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	mu      sync.Mutex
}

// Connect dials the daemon Unix socket.
func Connect(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB buffer

	return &Client{conn: conn, scanner: scanner}, nil
}

// Close shuts down the connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// SendCommand sends a command and reads one response line.
func (c *Client) SendCommand(cmd Command) (Response, error) {
	return c.send(context.Background(), cmd)
}

func (c *Client) send(ctx context.Context, cmd Command) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A request already on the wire runs to completion so the response
	// stream stays aligned; cancellation only stops new requests.
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return Response{}, fmt.Errorf("set deadline: %w", err)
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return Response{}, fmt.Errorf("marshal command: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return Response{}, fmt.Errorf("write command: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Response{}, fmt.Errorf("read response: %w", err)
		}
		return Response{}, fmt.Errorf("connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return resp, nil
}

func (c *Client) call(ctx context.Context, cmd Command) (Response, error) {
	resp, err := c.send(ctx, cmd)
	if err != nil {
		return Response{}, err
	}
	if !resp.OK {
		if resp.Error == "" {
			resp.Error = "daemon refused " + cmd.Cmd
		}
		return Response{}, errors.New(resp.Error)
	}
	return resp, nil
}

// RecentCalls queries the daemon's store.
func (c *Client) RecentCalls(ctx context.Context, limit int) ([]calllog.Entry, error) {
	resp, err := c.call(ctx, Command{Cmd: CmdQuery, Limit: limit})
	if err != nil {
		return nil, err
	}
	if resp.Entries == nil {
		return []calllog.Entry{}, nil
	}
	return resp.Entries, nil
}

// InsertCall inserts through the daemon.
func (c *Client) InsertCall(ctx context.Context, v calllog.Values) (string, error) {
	resp, err := c.call(ctx, Command{Cmd: CmdInsert, Values: &v})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Grants reads the daemon's permission registry.
func (c *Client) Grants(ctx context.Context) (map[calllog.Capability]bool, error) {
	resp, err := c.call(ctx, Command{Cmd: CmdGrants})
	if err != nil {
		return nil, err
	}
	if resp.Grants == nil {
		return map[calllog.Capability]bool{}, nil
	}
	return resp.Grants, nil
}

// SetGrants records grants through the daemon.
func (c *Client) SetGrants(ctx context.Context, grants map[calllog.Capability]bool) error {
	_, err := c.call(ctx, Command{Cmd: CmdSetGrants, Grants: grants})
	return err
}
