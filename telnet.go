/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

// Telnet command bytes that may show up in a client's input stream.
const (
	telnetSE   = 240
	telnetSB   = 250
	telnetWILL = 251
	telnetDONT = 254
	telnetIAC  = 255
)

// stripTelnet removes IAC command sequences from raw input. A lone IAC at
// the end of the line is dropped too.
func stripTelnet(raw []byte) []byte {
	out := make([]byte, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		if raw[i] != telnetIAC {
			out = append(out, raw[i])
			continue
		}

		if i+1 >= len(raw) {
			break
		}

		switch cmd := raw[i+1]; {
		case cmd == telnetIAC:
			out = append(out, telnetIAC)
			i++
		case cmd >= telnetWILL && cmd <= telnetDONT:
			i += 2
		case cmd == telnetSB:
			i += 2
			for i < len(raw) && !(raw[i-1] == telnetIAC && raw[i] == telnetSE) {
				i++
			}
		default:
			i++
		}
	}

	return out
}

// cleanLine turns one framed line into game input. Lines that are not valid
// UTF-8 are rejected; control characters are removed.
func cleanLine(raw []byte) (string, bool) {
	raw = stripTelnet(raw)

	if !utf8.Valid(raw) {
		return "", false
	}

	line := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, string(raw))

	return line, true
}

// readLine returns the next '\n' terminated line without its terminator.
// A line that does not fit in r's buffer is read through to its newline and
// reported as skipped. The returned slice is only valid until the next read.
func readLine(r *bufio.Reader) ([]byte, bool, error) {
	line, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = r.ReadSlice('\n')
		}
		return nil, err == nil, err
	}

	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, false, err
	}

	return bytes.TrimRight(line, "\r\n"), false, nil
}

func ServeTelnet(ctx context.Context, cfg *Config, hub *Hub) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)))
	if err != nil {
		return err
	}

	logf(cfg, "SERVE: Listening on telnet://%s", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			errorf("TELNET: accept failed: %v", err)

			continue
		}

		go serveTelnetConn(ctx, cfg, hub, conn)
	}
}

func serveTelnetConn(ctx context.Context, cfg *Config, hub *Hub, conn net.Conn) {
	defer conn.Close()

	c := newClient(conn.RemoteAddr().String())
	if !hub.connect(ctx, c) {
		return
	}

	go func() {
		for text := range c.send {
			_ = conn.SetWriteDeadline(time.Now().Add(timeout))
			if _, err := conn.Write([]byte(text)); err != nil {
				logf(cfg, "TELNET: write to %s failed: %v", c.addr, err)
				break
			}
		}
		_ = conn.Close()
	}()

	limiter := rate.NewLimiter(rate.Limit(cfg.rate), cfg.burst)

	r := bufio.NewReaderSize(conn, cfg.maxLine)

	for {
		raw, skipped, err := readLine(r)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logf(cfg, "TELNET: read from %s failed: %v", c.addr, err)
			}
			break
		}

		if skipped {
			logf(cfg, "TELNET: %s sent a line over %d bytes, dropping it", c.addr, cfg.maxLine)
			continue
		}

		if !limiter.Allow() {
			logf(cfg, "TELNET: %s is sending too fast, dropping a line", c.addr)
			continue
		}

		line, ok := cleanLine(raw)
		if !ok {
			continue
		}

		hub.input(ctx, c.id, line)
	}

	hub.disconnect(ctx, c.id)
}
