package relay

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIO publishes events to a socket.io server over a websocket.
type SocketIO struct {
	client    *socket.Socket
	event     string
	connected *atomic.Bool
}

// Dial connects to the server described by settings and waits for the
// connection to be established, the timeout to pass or ctx to end.
func Dial(ctx context.Context, settings *config.RelaySettings) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("relay", "socketio", "url", settings.URL)
	logger.Debug("Connecting playback relay...")

	parsedURL, err := url.Parse(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if settings.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	connected := new(atomic.Bool)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespaceOrRoot(settings.Namespace), opts)

	io.On(types.EventName("connect"), func(...any) {
		if !connected.Swap(true) {
			select {
			case connectChan <- nil:
			default:
			}
		}
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		connected.Store(false)
		logger.Warn("Playback relay disconnected.", "reason", fmt.Sprint(reason...))
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		select {
		case connectChan <- connectError(errs):
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		logger.Info("Playback relay connected.", "sid", io.Id())
		return &SocketIO{client: io, event: settings.Event, connected: connected}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(settings.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", settings.Timeout)
	}
}

// Publish emits ev under the configured event name.
func (s *SocketIO) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.connected.Load() {
		return errors.New("socket.io client is not connected")
	}
	s.client.Emit(s.event, ev.Payload())
	return nil
}

// Close disconnects the client. Publish fails afterwards.
func (s *SocketIO) Close() error {
	s.connected.Store(false)
	s.client.Disconnect()
	return nil
}

func namespaceOrRoot(ns string) string {
	if ns == "" {
		return "/"
	}
	return ns
}

func connectError(errs []any) error {
	if len(errs) > 0 {
		if err, ok := errs[0].(error); ok {
			return err
		}
		return fmt.Errorf("%v", errs[0])
	}
	return errors.New("unknown connection error")
}
