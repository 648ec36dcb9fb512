package link

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"xplogd-live/internal/mapview"
	"xplogd-live/internal/observability"
)

// Client es un adaptador de mapa que manda cada operación como una línea
// NDJSON a un proxy de render por TCP. Si no hay conexión la operación se
// descarta: el próximo poll vuelve a mandar el estado.
type Client struct {
	addr   string
	logger *slog.Logger

	redial  time.Duration
	retry   time.Duration
	handler func(line []byte)

	mu   sync.Mutex
	conn net.Conn
}

func NewClient(addr string, lg *slog.Logger) *Client {
	c := &Client{
		addr:   addr,
		logger: lg.With("component", "link"),
		redial: 2 * time.Second,
		retry:  5 * time.Second,
	}
	c.handler = c.logIncoming
	return c
}

// Run mantiene la conexión hasta que ctx se cancele.
func (c *Client) Run(ctx context.Context) {
	if c.addr == "" {
		c.logger.Info("link: disabled (no renderer address configured)")
		return
	}
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", c.addr)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("link: dial failed", "addr", c.addr, "err", err)
			if !sleep(ctx, c.retry) {
				return
			}
			continue
		}

		c.setConn(conn)
		c.logger.Info("link: connected", "remote", conn.RemoteAddr().String())

		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
		// leer en este hilo hasta que se caiga
		c.readLoop(conn)
		stop()

		c.clearConn(conn)
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("link: connection closed, reconnecting...")
		if !sleep(ctx, c.redial) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Client) setConn(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

func (c *Client) clearConn(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Connected indica si hay una conexión abierta con el proxy.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) readLoop(conn net.Conn) {
	r := bufio.NewScanner(conn)
	for r.Scan() {
		c.handler(r.Bytes())
	}
	if err := r.Err(); err != nil && err != io.EOF {
		c.logger.Warn("link: read error", "err", err)
	}
}

// Por ahora el proxy sólo manda acks; se registran.
func (c *Client) logIncoming(line []byte) {
	c.logger.Debug("link: incoming line", "line", string(line))
}

func (c *Client) sendNDJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("link: not connected")
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	_, err = c.conn.Write(append(b, '\n'))
	return err
}

func (c *Client) send(op Op) {
	if c.addr == "" {
		return
	}
	if err := c.sendNDJSON(op); err != nil {
		observability.AdapterErrors.WithLabelValues("link").Inc()
		c.logger.Warn("link: send failed", "op", op.Op, "handle", op.Handle, "err", err)
	}
}

func (c *Client) CreateMarker(pos mapview.LonLat, icon mapview.Icon) mapview.Handle {
	h := mapview.NewHandle()
	c.send(Op{Op: OpCreate, Handle: h, Pos: &pos, Icon: &icon})
	return h
}

func (c *Client) MoveMarker(h mapview.Handle, pos mapview.LonLat) {
	c.send(Op{Op: OpMove, Handle: h, Pos: &pos})
}

func (c *Client) SetMarkerIcon(h mapview.Handle, icon mapview.Icon) {
	c.send(Op{Op: OpIcon, Handle: h, Icon: &icon})
}

func (c *Client) RemoveMarker(h mapview.Handle) {
	c.send(Op{Op: OpRemove, Handle: h})
}

func (c *Client) CenterAndZoom(pos mapview.LonLat, zoom int) {
	c.send(Op{Op: OpCenter, Pos: &pos, Zoom: zoom})
}

func (c *Client) Render(text string) {
	c.send(Op{Op: OpInfo, Text: text})
}
