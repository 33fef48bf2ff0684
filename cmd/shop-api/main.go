package main

import (
	"os"

	"github.com/spf13/cobra"
)

const service = "shop-api"

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     service,
	Short:   "In-memory products and albums REST API",
	Long: `shop-api serves two independent in-memory collections, products and
albums, over a JSON REST interface. Nothing is persisted across restarts.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().String("config", "", "config file path (default: ./config.yaml if present)")
	rootCmd.Flags().Int("port", 3000, "HTTP listen port (env: PORT, SHOP_SERVER_PORT)")
	rootCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error (env: SHOP_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
