package config

import (
	"errors"

	"github.com/spf13/viper"
)

// ErrNilConfig is returned when a nil Config is provided.
var ErrNilConfig = errors.New("config is nil")

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Chunker   ChunkerConfig   `mapstructure:"chunker"`
	Sanitizer SanitizerConfig `mapstructure:"sanitizer"`
}

// ServerConfig holds HTTP server settings and working directories.
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	UploadDir string `mapstructure:"upload_dir"`
	AudioDir  string `mapstructure:"audio_dir"`
	StaticDir string `mapstructure:"static_dir"`
}

// ProviderConfig holds connection and synthesis settings for the TTS provider.
type ProviderConfig struct {
	// Name selects the synthesis backend: "murf" (default) or "openai".
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`

	// Fixed synthesis style and audio format sent with every request.
	Style      string `mapstructure:"style"`
	SampleRate int    `mapstructure:"sample_rate"`
	Format     string `mapstructure:"format"`
	Channel    string `mapstructure:"channel"`

	// Model is only used by the openai backend.
	Model string `mapstructure:"model"`
}

// ChunkerConfig holds text chunking settings.
type ChunkerConfig struct {
	// MaxChunkSize is the maximum chunk length in Unicode code points.
	MaxChunkSize int `mapstructure:"max_chunk_size"`
}

// SanitizerConfig holds the banned-word substitution map.
type SanitizerConfig struct {
	// Replacements maps a banned word to its safe substitute.
	Replacements map[string]string `mapstructure:"replacements"`
	// DenylistFile optionally points at a YAML file with extra replacements.
	DenylistFile string `mapstructure:"denylist_file"`
}

// SetDefaults registers default values for all settings on the global viper.
func SetDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.upload_dir", "uploads")
	viper.SetDefault("server.audio_dir", "generated_audio")
	viper.SetDefault("server.static_dir", "static")

	viper.SetDefault("provider.name", "murf")
	viper.SetDefault("provider.style", "Promo")
	viper.SetDefault("provider.sample_rate", 48000)
	viper.SetDefault("provider.format", "MP3")
	viper.SetDefault("provider.channel", "STEREO")
	viper.SetDefault("provider.model", "tts-1")

	viper.SetDefault("chunker.max_chunk_size", 2000)

	viper.SetDefault("sanitizer.replacements", map[string]string{"cock": "rooster"})
}

// Load reads the Viper-populated config into a Config struct.
// The provider API key may also arrive via MURF_API_KEY or OPENAI_API_KEY.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("unmarshal config: " + err.Error())
	}

	if cfg.Provider.APIKey == "" {
		switch cfg.Provider.Name {
		case "openai":
			cfg.Provider.APIKey = viper.GetString("OPENAI_API_KEY")
		default:
			cfg.Provider.APIKey = viper.GetString("MURF_API_KEY")
		}
	}
	return &cfg, nil
}
