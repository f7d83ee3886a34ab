package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Client is a connected event stream.
type Client interface {
	Emit(event string, payload map[string]any)
	Close()
}

// Dialer opens a Client for a server URL.
type Dialer func(ctx context.Context, rawURL string) (Client, error)

// DialOptions tune the socket.io dialer.
type DialOptions struct {
	Namespace          string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

type socketClient struct {
	io *socket.Socket
}

func (c *socketClient) Emit(event string, payload map[string]any) {
	c.io.Emit(event, payload)
}

func (c *socketClient) Close() {
	c.io.Disconnect()
}

// SocketIO returns a Dialer connecting over the websocket transport.
func SocketIO(opts DialOptions) Dialer {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return func(ctx context.Context, rawURL string) (Client, error) {
		logger := ctxlog.FromContext(ctx).With("url", rawURL)

		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL: %w", err)
		}
		if parsedURL.Scheme == "" || parsedURL.Host == "" {
			return nil, fmt.Errorf("invalid notify URL %q", rawURL)
		}

		sopts := socket.DefaultOptions()
		if parsedURL.Path != "" {
			sopts.SetPath(parsedURL.Path)
		}
		if opts.InsecureSkipVerify {
			logger.Warn("Skipping TLS certificate verification")
			sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		}
		sopts.SetTransports(types.NewSet(transports.WebSocket))

		connected := make(chan error, 1)
		baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
		manager := socket.NewManager(baseURL, sopts)
		io := manager.Socket(opts.Namespace, sopts)

		io.Once(types.EventName("connect"), func(...any) {
			logger.Debug("Notify client connected", "sid", io.Id())
			connected <- nil
		})
		io.Once(types.EventName("connect_error"), func(errs ...any) {
			err := fmt.Errorf("connect_error")
			if len(errs) > 0 {
				if e, ok := errs[0].(error); ok {
					err = e
				} else {
					err = fmt.Errorf("%v", errs[0])
				}
			}
			connected <- err
		})
		io.Connect()

		select {
		case err := <-connected:
			if err != nil {
				io.Disconnect()
				return nil, fmt.Errorf("socket.io connection failed: %w", err)
			}
			return &socketClient{io: io}, nil
		case <-ctx.Done():
			io.Disconnect()
			return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
		case <-time.After(opts.Timeout):
			io.Disconnect()
			return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", opts.Timeout)
		}
	}
}
