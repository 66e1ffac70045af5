package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_ytaudio/internal/audioserver"
	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the MCP server when MCP_PORT is set)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		srcs, err := initEngine()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), srcs, env.Str("PORT", "3000"), env.Str("MCP_PORT", ""))
	},
}

// writeMargin is added on top of the resolve walk for selection and encoding.
const writeMargin = 15 * time.Second

// writeTimeout lets a request that exhausts every source still write its 503.
func writeTimeout(srcs []engine.Source) time.Duration {
	return engine.WalkBudget(srcs) + writeMargin
}

func serve(ctx context.Context, srcs []engine.Source, port, mcpPort string) error {
	api := &http.Server{
		Addr:              ":" + port,
		Handler:           audioserver.New(srcs, engine.Cfg.Development, version).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout(srcs),
	}
	slog.Info("starting go_ytaudio", slog.String("port", port), slog.String("mcp_port", mcpPort))

	if mcpPort != "" {
		go func() {
			if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("api server failed", slog.Any("error", err))
			}
		}()

		server := mcp.NewServer(&mcp.Implementation{Name: "go_ytaudio", Version: version}, nil)
		audioserver.RegisterTools(server, srcs)
		slog.Info("tools registered", slog.Int("count", 1))

		return mcpserver.Run(server, mcpserver.Config{
			Name:         "go_ytaudio",
			Version:      version,
			Port:         mcpPort,
			WriteTimeout: writeTimeout(srcs),
			Metrics:      engine.FormatMetrics,
		})
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = api.Shutdown(shutdownCtx)
	}()

	if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url-or-id>",
	Short: "Resolve one video and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcs, err := initEngine()
		if err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")

		res, err := engine.Convert(cmd.Context(), srcs, args[0])
		if err != nil {
			status, body := audioserver.Failure(err, engine.Cfg.Development)
			if encErr := out.Encode(body); encErr != nil {
				return encErr
			}
			return fmt.Errorf("resolve failed (HTTP %d): %w", status, err)
		}
		return out.Encode(audioserver.Envelope{Success: true, Data: res})
	},
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Check the configured YouTube credential and explain how to obtain one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cred, err := engine.ParseCredential(
			env.Str("YOUTUBE_COOKIE", ""),
			env.Str("YOUTUBE_PO_TOKEN", ""),
			env.Str("YOUTUBE_VISITOR_DATA", ""),
		)
		if err != nil {
			return fmt.Errorf("YOUTUBE_COOKIE: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "cookies:       %d\n", len(cred.Cookies))
		for _, c := range cred.Cookies {
			fmt.Fprintf(w, "  - %s\n", c.Name)
		}
		fmt.Fprintf(w, "po token:      %s\n", setOrMissing(cred.POToken))
		fmt.Fprintf(w, "visitor data:  %s\n", setOrMissing(cred.VisitorData))
		fmt.Fprint(w, credentialHelp)
		return nil
	},
}

func setOrMissing(s string) string {
	if s == "" {
		return "missing"
	}
	return fmt.Sprintf("set (%d chars)", len(s))
}

const credentialHelp = `
YouTube answers "Sign in to confirm you're not a bot" to many server IPs.
The innertube, watchpage and extractor sources can forward a browser session:

  1. Open https://www.youtube.com in a browser and play any video.
  2. In the developer tools Network tab, filter for "player".
  3. Copy the "po=" parameter (PoToken) and "visitorData" from that request.
  4. Export the cookies for youtube.com (JSON export or a raw Cookie header).

Then set:
  YOUTUBE_PO_TOKEN=<po token>
  YOUTUBE_VISITOR_DATA=<visitor data>
  YOUTUBE_COOKIE=<cookie JSON or header>
`
