package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind     string
	burst    int
	httpPort int
	maxLine  int
	port     int
	prefix   string
	profile  bool
	rate     float64
	tick     time.Duration
	tlsCert  string
	tlsKey   string
	verbose  bool
	version  bool
	wordList string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.httpPort < 0 || c.httpPort > 65535 {
		return fmt.Errorf("invalid http port (must be between 0-65535 inclusive): %d", c.httpPort)
	}
	if c.httpPort == c.port {
		return fmt.Errorf("--port and --http-port must differ: %d", c.port)
	}
	if c.tick <= 0 {
		return fmt.Errorf("invalid tick interval (must be positive): %s", c.tick)
	}
	if c.rate <= 0 || c.burst < 1 {
		return fmt.Errorf("invalid rate limit (rate must be positive, burst at least 1): %v/%d", c.rate, c.burst)
	}
	if c.maxLine < 16 {
		return fmt.Errorf("invalid max line length (must be at least 16 bytes): %d", c.maxLine)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TELNAMES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "telnames",
		Short:         "Codenames over telnet: rooms, teams, spymasters and a shared 5x5 board.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TELNAMES_BIND)")
	fs.IntVar(&cfg.burst, "burst", 10, "lines a connection may send in a burst before rate limiting applies (env: TELNAMES_BURST)")
	fs.IntVar(&cfg.httpPort, "http-port", 8080, "port for the status page and websocket endpoint, 0 to disable (env: TELNAMES_HTTP_PORT)")
	fs.IntVar(&cfg.maxLine, "max-line", 512, "maximum length of a single input line in bytes (env: TELNAMES_MAX_LINE)")
	fs.IntVarP(&cfg.port, "port", "p", 1234, "telnet port to listen on (env: TELNAMES_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: TELNAMES_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: TELNAMES_PROFILE)")
	fs.Float64Var(&cfg.rate, "rate", 5, "sustained input lines per second allowed per connection (env: TELNAMES_RATE)")
	fs.DurationVar(&cfg.tick, "tick", 100*time.Millisecond, "interval between idle polls of every session (env: TELNAMES_TICK)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate for the http listener (env: TELNAMES_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile for the http listener (env: TELNAMES_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: TELNAMES_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: TELNAMES_VERSION)")
	fs.StringVar(&cfg.wordList, "word-list", "", "newline-separated file of card words, replacing the built-in list (env: TELNAMES_WORD_LIST)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("telnames v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
