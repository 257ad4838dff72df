// Command nba-mcp serves NBA statistics as MCP tools and resources.
//
// Usage:
//
//	nba-mcp serve                          # stdio
//	nba-mcp serve --transport http --addr :8080
//	nba-mcp tools
//	nba-mcp call get_player_career_stats --arg player_id=2544
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aatrey56/nba-mcp/internal/catalog"
	"github.com/aatrey56/nba-mcp/internal/config"
	"github.com/aatrey56/nba-mcp/internal/fetch"
	"github.com/aatrey56/nba-mcp/internal/mcpserver"
	"github.com/aatrey56/nba-mcp/internal/nba"
	"github.com/aatrey56/nba-mcp/internal/store"
)

var errCallFailed = errors.New("call failed")

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs, built after config is loaded.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	dispatcher *nba.Dispatcher
	server     *mcpserver.Server
}

func newApp(cfg config.Config, logOut io.Writer) *app {
	logger := cfg.NewLogger(logOut)

	client := fetch.NewClient(cfg.HTTPTimeout, logger)
	client.StatsBaseURL = cfg.StatsBaseURL
	client.LiveBaseURL = cfg.LiveBaseURL
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}

	d := nba.NewDispatcher(client, logger)
	return &app{
		cfg:        cfg,
		logger:     logger,
		dispatcher: d,
		server:     mcpserver.New(d, catalog.New(client), logger),
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "nba-mcp",
		Short:         "NBA statistics MCP server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// stdout belongs to the stdio transport; logs always go to stderr.
			a = newApp(cfg, stderr)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	getApp := func() *app { return a }
	root.AddCommand(serveCmd(getApp))
	root.AddCommand(toolsCmd(getApp))
	root.AddCommand(callCmd(getApp))
	root.AddCommand(versionCmd())
	return root
}

func serveCmd(getApp func() *app) *cobra.Command {
	var transport, addr, path string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			cfg := a.cfg
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("path") {
				cfg.Path = path
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if cfg.Transport == config.TransportHTTP {
				return a.server.ListenHTTP(ctx, mcpserver.HTTPOptions{
					Addr:        cfg.Addr,
					Path:        cfg.Path,
					APIKey:      cfg.APIKey,
					AuthHeader:  cfg.AuthHeader,
					CORSOrigins: cfg.CORSOrigins,
				})
			}
			return a.server.RunStdio(ctx)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport: stdio|http (env NBA_MCP_TRANSPORT)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address (env NBA_MCP_ADDR)")
	cmd.Flags().StringVar(&path, "path", "/mcp", "HTTP path for MCP endpoint (env NBA_MCP_PATH)")
	return cmd
}

func toolsCmd(getApp func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := json.MarshalIndent(map[string]any{"tools": getApp().server.Tools()}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

func callCmd(getApp func() *app) *cobra.Command {
	var (
		pairs  []string
		outDir string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool and print its JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			callArgs, err := parseArgPairs(pairs)
			if err != nil {
				return err
			}

			res := a.dispatcher.Call(cmd.Context(), args[0], callArgs)
			fmt.Fprintln(cmd.OutOrStdout(), string(res.Payload))

			if outDir != "" {
				st := store.NewJSONStore(outDir)
				path, err := st.WriteRaw(store.DocumentPath(args[0], callArgs), res.Payload, pretty)
				if err != nil {
					return err
				}
				a.logger.Info("payload written", "path", path)
			}
			if res.Failed() {
				return fmt.Errorf("%w: %s", errCallFailed, args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "arg", nil, "tool argument as key=value (repeatable)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "also write the payload under this directory")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty-print JSON written to --out-dir")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mcpserver.Name, mcpserver.Version)
		},
	}
}

// parseArgPairs turns ["player_id=2544"] into Args. Values are not trimmed.
func parseArgPairs(pairs []string) (nba.Args, error) {
	args := nba.Args{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--arg %q: want key=value", p)
		}
		args[k] = v
	}
	return args, nil
}
