package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrConnect indicates that the viewer could not be reached.
var ErrConnect = errors.New("viewer: connection failed")

// dialTimeout bounds the wait for the connect event.
const dialTimeout = 15 * time.Second

// Client is a connected viewer stream.
type Client struct {
	*Publisher

	io     *socket.Socket
	logger *slog.Logger
}

// Dial connects to a socket.io server at rawURL (scheme, host and path are
// used) on namespace, waiting for the connect event.
func Dial(ctx context.Context, rawURL, namespace string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url: %w", ErrConnect, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: url %q needs scheme and host", ErrConnect, rawURL)
	}
	if namespace == "" {
		namespace = "/"
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "viewer", "url", rawURL)

	opts := socket.DefaultOptions()
	if u.Path != "" {
		opts.SetPath(u.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(fmt.Sprintf("%s://%s", u.Scheme, u.Host), opts)
	io := manager.Socket(namespace, opts)

	connected := make(chan error, 1)
	signal := func(err error) {
		select {
		case connected <- err:
		default:
		}
	}
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("viewer connected", "sid", io.Id())
		signal(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		signal(err)
	})

	logger.Debug("connecting")
	io.Connect()

	select {
	case err = <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("%w: %w", ErrConnect, err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("%w: %w", ErrConnect, ctx.Err())
	case <-time.After(dialTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("%w: timed out after %v", ErrConnect, dialTimeout)
	}

	c := &Client{io: io, logger: logger}
	c.Publisher = NewPublisher(func(event string, args ...any) {
		io.Emit(event, args...)
	})

	return c, nil
}

// Close disconnects from the viewer.
func (c *Client) Close() error {
	c.logger.Info("viewer disconnected", "sid", c.io.Id())
	c.io.Disconnect()

	return nil
}
