package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second

	qrSize = 320

	// wsReadSlack is how many times --max-line a single websocket message may
	// be before the connection itself is dropped. Smaller oversized messages
	// are discarded like long telnet lines.
	wsReadSlack = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if cfg.scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

// telnetAddress is where players should point their telnet client, using
// the host name the request came in on.
func telnetAddress(cfg *Config, r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(r.Host); err == nil {
		host = h
	}
	if host == "" {
		host = cfg.bind
	}

	return "telnet://" + net.JoinHostPort(strings.Trim(host, "[]"), strconv.Itoa(cfg.port))
}

func serveVersion(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)

		written, err := w.Write([]byte("telnames v" + releaseVersion + "\n"))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Version page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRooms(cfg *Config, hub *Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		rooms, err := hub.rooms(r.Context())
		if err != nil {
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)

			return
		}

		data, err := json.Marshal(rooms)
		if err != nil {
			errs <- err

			http.Error(w, "unable to list rooms", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Room list (%s, %d rooms) to %s in %s",
			humanReadableSize(int64(written)),
			len(rooms),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		png, err := qrcode.Encode(telnetAddress(cfg, r), qrcode.Medium, qrSize)
		if err != nil {
			errs <- err

			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		_, err = w.Write(png)
		if err != nil {
			errs <- err
		}
	}
}

// serveWebsocket carries the same line protocol as the telnet listener:
// each text message is one line in, each prompt is one message out.
func serveWebsocket(ctx context.Context, cfg *Config, hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade for %s failed: %v", realIP(r), err)

			return
		}
		defer conn.Close()

		conn.SetReadLimit(int64(cfg.maxLine) * wsReadSlack)

		c := newClient(realIP(r))
		if !hub.connect(ctx, c) {
			return
		}

		go func() {
			for text := range c.send {
				_ = conn.SetWriteDeadline(time.Now().Add(timeout))
				if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
					break
				}
			}

			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		}()

		limiter := rate.NewLimiter(rate.Limit(cfg.rate), cfg.burst)

		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				break
			}

			if kind != websocket.TextMessage {
				continue
			}

			if len(data) > cfg.maxLine {
				logf(cfg, "WS: %s sent a line over %d bytes, dropping it", c.addr, cfg.maxLine)

				continue
			}

			if !limiter.Allow() {
				logf(cfg, "WS: %s is sending too fast, dropping a line", c.addr)

				continue
			}

			line, ok := cleanLine(data)
			if !ok {
				continue
			}

			hub.input(ctx, c.id, line)
		}

		hub.disconnect(ctx, c.id)
	}
}

func ServePage(ctx context.Context, cfg *Config, hub *Hub) error {
	mux := httprouter.New()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.httpPort)),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)

		io.WriteString(w, newPage("Server Error", "An error has occurred. Please try again."))
	}

	errs := make(chan error, 64)

	go func() {
		for {
			select {
			case err := <-errs:
				errorf("SERVE: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	mux.GET(cfg.prefix+"/", serveHomePage(cfg, errs))

	mux.GET(cfg.prefix+"/healthz", serveHealthCheck(cfg, errs))

	mux.GET(cfg.prefix+"/qr", serveQR(cfg, errs))

	mux.GET(cfg.prefix+"/rooms", serveRooms(cfg, hub, errs))

	mux.GET(cfg.prefix+"/version", serveVersion(cfg, errs))

	mux.GET(cfg.prefix+"/ws", serveWebsocket(ctx, cfg, hub))

	if cfg.profile {
		registerProfileHandlers(cfg, mux)
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	logf(cfg, "SERVE: Listening on %s://%s%s/", cfg.scheme(), ln.Addr(), cfg.prefix)

	serveErr := make(chan error, 1)

	go func() {
		var err error
		if cfg.tlsKey != "" && cfg.tlsCert != "" {
			err = srv.ServeTLS(ln, cfg.tlsCert, cfg.tlsKey)
		} else {
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return nil
}

// humanReadableSize formats a byte count in SI units for the serve logs.
func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "kMGTPE"[exp])
}
