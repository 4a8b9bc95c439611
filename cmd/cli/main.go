package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/pkg/client/verdix"
)

var log *zap.Logger

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func unwrap[T any](value T, err error) T {
	check(err)
	return value
}

var (
	endpoint   string
	configPath string

	rootCmd = &cobra.Command{
		Use:   "verdix",
		Short: "Verdix operator client",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump various info",
	}
)

func defaultEndpoint() string {
	if endpoint := os.Getenv("VERDIX_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return "http://localhost:8080"
}

func newClient() (*verdix.Client, error) {
	return verdix.NewClient(endpoint, os.Getenv("VERDIX_TOKEN"))
}

func loadConfig() (*config.Config, error) {
	return config.ParseConfig(configPath)
}

func initLogging() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(config.Build())
}

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", defaultEndpoint(), "Verdix server URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config for direct store access")

	dumpCmd.AddCommand(makeDumpLeaderboardCommand())
	dumpCmd.AddCommand(makeDumpTeamsCommand())
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(makeCountdownCommand())
	rootCmd.AddCommand(makeExportCommand())
	rootCmd.AddCommand(makeReplayCommand())
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
