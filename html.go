/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// cspHome lets the home page use its inline stylesheet.
func cspHome(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
}

func homeBody(cfg *Config, r *http.Request) string {
	addr := telnetAddress(cfg, r)
	host, port, _ := net.SplitHostPort(strings.TrimPrefix(addr, "telnet://"))

	return fmt.Sprintf(`<h1>telnames</h1>
<p>Codenames for two teams, played over telnet.</p>
<pre>%s</pre>
<p><img src="%s/qr" width="%d" height="%d" alt="QR code for %s"></p>
<p>Pick a name, create or join a room, then choose a team (<code>red</code>, <code>blue</code>) and a role
(<code>spymaster</code>, <code>teammate</code>). Someone types <code>start</code> once every seat is filled.</p>
<p>Spymasters give clues as <code>word,count</code>. Teammates guess with <code>!word</code> and pass with <code>!!</code>.</p>
<p><a href="%s/rooms">Open rooms</a></p>`,
		html.EscapeString("telnet "+host+" "+port),
		cfg.prefix, qrSize, qrSize, html.EscapeString(addr),
		cfg.prefix,
	)
}

func serveHomePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		page := newPage("telnames", homeBody(cfg, r))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(page)))
		securityHeaders(cfg, w)
		cspHome(w)

		written, err := w.Write([]byte(page))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Home page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}
