package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papertone/papertone/internal/config"
	"github.com/papertone/papertone/internal/display"
	"github.com/papertone/papertone/internal/extractor"
	"github.com/papertone/papertone/internal/pipeline"
	"github.com/papertone/papertone/internal/sanitizer"
	"github.com/papertone/papertone/internal/server"
	"github.com/papertone/papertone/internal/tts"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the papertone HTTP server",
	Long: `Starts the conversion HTTP server on port 8000 (or $PORT).

Endpoints:
  GET  /                     - landing page
  GET  /voices               - voice catalog
  POST /convert              - convert an uploaded PDF into one MP3
  GET  /download/{filename}  - download a generated audiobook
  GET  /audio/{filename}     - inline playback

The provider credential must be provided via environment variables:
  MURF_API_KEY   (default murf backend)
  OPENAI_API_KEY (with provider.name "openai")`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort picks the listen port: the --port flag beats the config value,
// and a PORT env variable (container environments) beats both. A PORT value
// that is not a positive integer is warned about and ignored.
func resolvePort(cfgPort, flagPort int, env string) int {
	port := cfgPort
	if flagPort != 0 {
		port = flagPort
	}
	if env == "" {
		return port
	}
	parsed, err := strconv.Atoi(env)
	if err != nil || parsed <= 0 {
		display.Warn(fmt.Sprintf("ignoring invalid PORT value %q", env))
		return port
	}
	return parsed
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	port := resolvePort(cfg.Server.Port, servePort, os.Getenv("PORT"))

	// The voice catalog follows the active backend so /voices only ever
	// lists IDs the synthesizer accepts.
	var (
		synth  tts.Synthesizer
		voices server.VoiceSource
	)
	switch cfg.Provider.Name {
	case "openai":
		oa, err := tts.NewOpenAISynthesizer(&cfg.Provider)
		if err != nil {
			return fmt.Errorf("create openai synthesizer: %w", err)
		}
		synth = oa
		voices = tts.OpenAIVoices()
	default:
		client, err := tts.NewClient(&cfg.Provider)
		if err != nil {
			return fmt.Errorf("create synthesis client: %w", err)
		}
		synth = client
		voices = tts.NewCatalog(client)
	}
	if cfg.Provider.APIKey == "" {
		display.Warn("provider api key is not set; conversions will fail until it is")
	}

	replacements, err := sanitizer.LoadDenylist(cfg.Sanitizer.DenylistFile, cfg.Sanitizer.Replacements)
	if err != nil {
		return fmt.Errorf("load denylist: %w", err)
	}
	san, err := sanitizer.New(replacements)
	if err != nil {
		return fmt.Errorf("build sanitizer: %w", err)
	}

	pipe := pipeline.New(extractor.NewPDF(), synth, san, cfg.Chunker.MaxChunkSize, cfg.Server.AudioDir)

	srv, err := server.New(cfg.Server, voices, pipe)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	addr := fmt.Sprintf(":%d", port)
	display.ServerBanner(display.ServerInfo{
		Version:  version,
		Addr:     addr,
		Provider: cfg.Provider.Name,
		AudioDir: cfg.Server.AudioDir,
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}
	return httpServer.ListenAndServe()
}
