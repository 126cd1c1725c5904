// Package cli holds the command-line plumbing shared by the shards and
// crystaldoc tools: global flags, configuration, logging and output.
package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/shardscout/internal/config"
	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/internal/output"
	"github.com/jmylchreest/shardscout/internal/version"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
)

// App carries the state shared by one tool's commands.
type App struct {
	name    string
	viper   *viper.Viper
	cfgFile string
	format  string
	pretty  bool
	cfg     config.Config
}

// NewApp creates the shared state for the named tool.
func NewApp(name string) *App {
	return &App{
		name:  name,
		viper: viper.New(),
	}
}

// Name returns the tool name.
func (a *App) Name() string {
	return a.name
}

// Config returns the configuration resolved by Setup.
func (a *App) Config() config.Config {
	return a.cfg
}

// Fetcher builds a retrieval client from the resolved configuration.
func (a *App) Fetcher() *fetcher.Client {
	return fetcher.New(a.cfg.Fetcher())
}

// AttachRoot registers the global flags on root, wires Setup as its
// persistent pre-run hook and enables --version.
func (a *App) AttachRoot(root *cobra.Command) {
	root.Version = version.String()
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.Setup()
	}

	def := fetcher.DefaultConfig()
	flags := root.PersistentFlags()

	flags.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.shardscout.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")

	flags.StringVarP(&a.format, "format", "f", string(output.FormatJSON), "output format: "+formatList())
	flags.BoolVar(&a.pretty, "pretty", false, "indent JSON output")

	flags.Duration("timeout", def.Timeout, "per-request timeout")
	flags.Int("max-redirects", def.MaxRedirects, "redirects to follow per request (negative disables)")
	flags.String("user-agent", "", "User-Agent header (default "+def.UserAgent+")")
	flags.String("max-body-size", "0", "largest page to accept, e.g. 20MB (0 = unlimited)")

	_ = a.viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = a.viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = a.viper.BindPFlag(config.KeyMaxRedirects, flags.Lookup("max-redirects"))
	_ = a.viper.BindPFlag(config.KeyUserAgent, flags.Lookup("user-agent"))
	_ = a.viper.BindPFlag(config.KeyMaxBodySize, flags.Lookup("max-body-size"))
}

// Setup initializes logging and resolves the configuration. It runs before
// every command.
func (a *App) Setup() error {
	if err := config.Init(a.viper, a.cfgFile); err != nil {
		return err
	}

	logger.Init(logger.Options{
		Debug: a.viper.GetBool("debug"),
		Quiet: a.viper.GetBool("quiet"),
	})

	if _, err := output.ParseFormat(a.format); err != nil {
		return err
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Debug("configuration loaded",
		"tool", a.name,
		"config_file", a.viper.ConfigFileUsed(),
		"timeout", cfg.Timeout,
		"max_redirects", cfg.MaxRedirects)
	return nil
}

func (a *App) newWriter(w io.Writer, opts ...output.WriterOption) (output.Writer, error) {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	opts = append(opts, output.WithPretty(a.pretty))
	return output.NewWriter(w, format, opts...)
}

// WriteOne writes a single record in the selected format.
func (a *App) WriteOne(w io.Writer, item any) error {
	writer, err := a.newWriter(w)
	if err != nil {
		return err
	}
	if err := writer.Write(item); err != nil {
		return err
	}
	return writer.Close()
}

// WriteList writes records as a list, so an empty or single-element result
// still encodes as an array.
func WriteList[T any](a *App, w io.Writer, items []T) error {
	writer, err := a.newWriter(w, output.WithArray(true))
	if err != nil {
		return err
	}

	all := make([]any, len(items))
	for i := range items {
		all[i] = items[i]
	}
	if err := writer.WriteAll(all); err != nil {
		return err
	}
	return writer.Close()
}

// Limit returns at most n items; n <= 0 returns all of them.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

// Query joins positional arguments into one search query.
func Query(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// Execute runs root until completion or SIGINT/SIGTERM and returns the
// process exit code. Failures are reported once as "Error: <message>".
func Execute(root *cobra.Command) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

func formatList() string {
	names := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
