// go_ytaudio resolves YouTube videos to direct audio stream URLs.
//
// Serves /api/convert over HTTP: a YouTube URL or video ID goes in, a direct
// audio stream URL plus title, author, thumbnail and duration come out.
// Upstreams (Invidious, Piped, YouTube Innertube, the watch page and a direct
// extractor) are tried in a configured order until one answers. Optionally
// exposes the same conversion as the youtube_audio MCP tool.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
	"github.com/anatolykoptev/go_ytaudio/internal/engine/sources"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "go_ytaudio",
	Short:         "Resolve YouTube videos to direct audio stream URLs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		initLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, resolveCmd, credentialsCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("go_ytaudio failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(env.Str("LOG_FORMAT", "text"), "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// initEngine reads the environment, installs the engine configuration and
// returns the ordered source list.
func initEngine() ([]engine.Source, error) {
	cred, err := engine.ParseCredential(
		env.Str("YOUTUBE_COOKIE", ""),
		env.Str("YOUTUBE_PO_TOKEN", ""),
		env.Str("YOUTUBE_VISITOR_DATA", ""),
	)
	if err != nil {
		return nil, err
	}

	c := engine.Config{
		Providers:          env.List("PROVIDERS", strings.Join(sources.DefaultProviders, ",")),
		InvidiousInstances: env.List("INVIDIOUS_INSTANCES", ""),
		PipedInstances:     env.List("PIPED_INSTANCES", ""),
		ProviderTimeout:    env.Duration("PROVIDER_TIMEOUT", engine.DefaultSourceTimeout),
		Development:        env.Str("APP_ENV", "production") == "development",
		Credential:         cred,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	bc, err := engine.NewBrowserClient(15, env.Str("WEBSHARE_API_KEY", ""))
	if err != nil {
		slog.Warn("stealth client init failed, watch page uses plain HTTP", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)

	srcs, err := sources.Build(engine.Cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("sources configured",
		slog.Int("count", len(srcs)),
		slog.String("providers", strings.Join(c.Providers, ",")),
		slog.Bool("credential", !cred.Empty()),
	)
	return srcs, nil
}
