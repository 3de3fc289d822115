/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrBoardLayout      = errors.New("card layout does not fill the board")
	ErrRoomNotFound     = errors.New("room not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrWordListTooShort = errors.New("word list too short")
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: logDate,
}).With().Timestamp().Logger()

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	logger.Info().Msgf(format, args...)
}

func errorf(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body{font-family:monospace;margin:0;padding:1em;color:#222;background:#fafafa;}`)
	htmlBody.WriteString(`pre{background:#eee;padding:.5em;}img{image-rendering:pixelated;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body>%s</body></html>", body))

	return htmlBody.String()
}
