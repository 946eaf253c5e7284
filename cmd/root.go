package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papertone/papertone/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "papertone",
	Short: "Turn PDFs into audiobooks.",
	Long: `Papertone converts uploaded PDF documents into single spoken-audio files:
text is extracted page by page, split into provider-safe chunks, synthesized
chunk by chunk, and concatenated into one MP3.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.papertone/config.yaml)")
}

func initConfig() {
	// A local .env is honored the same way the config file is: optional.
	_ = godotenv.Load()

	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".papertone"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// config.yaml is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()
}
