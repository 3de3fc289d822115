package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		bind:     "0.0.0.0",
		burst:    10,
		httpPort: 8080,
		maxLine:  512,
		port:     1234,
		rate:     5,
		tick:     100 * time.Millisecond,
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{name: "defaults", modify: func(c *Config) {}, valid: true},
		{name: "http disabled", modify: func(c *Config) { c.httpPort = 0 }, valid: true},
		{name: "tls pair", modify: func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, valid: true},
		{name: "tls cert only", modify: func(c *Config) { c.tlsCert = "cert.pem" }, valid: false},
		{name: "port zero", modify: func(c *Config) { c.port = 0 }, valid: false},
		{name: "port too high", modify: func(c *Config) { c.port = 70000 }, valid: false},
		{name: "http port negative", modify: func(c *Config) { c.httpPort = -1 }, valid: false},
		{name: "same ports", modify: func(c *Config) { c.httpPort = c.port }, valid: false},
		{name: "zero tick", modify: func(c *Config) { c.tick = 0 }, valid: false},
		{name: "zero rate", modify: func(c *Config) { c.rate = 0 }, valid: false},
		{name: "zero burst", modify: func(c *Config) { c.burst = 0 }, valid: false},
		{name: "tiny lines", modify: func(c *Config) { c.maxLine = 8 }, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(cfg)

			err := cfg.validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestNewCmdEnvironment(t *testing.T) {
	t.Setenv("TELNAMES_PORT", "4321")
	t.Setenv("TELNAMES_VERBOSE", "true")

	cfg := &Config{}
	cmd := newCmd(cfg)
	cmd.SetArgs([]string{"--http-port", "0", "--tick", "0"})

	// The bad tick fails validation before anything starts listening.
	assert.Error(t, cmd.Execute())
	assert.Equal(t, 4321, cfg.port)
	assert.True(t, cfg.verbose)
	assert.Equal(t, 0, cfg.httpPort)
}
