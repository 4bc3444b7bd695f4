package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/angelospk/sublight-go/pkg/core/naming"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Define configuration keys
const (
	CfgKeyClientID      = "sublight.clientid"
	CfgKeyAPIKey        = "sublight.apikey"
	CfgKeyUsername      = "sublight.username"
	CfgKeyPassword      = "sublight.password"
	CfgKeyEndpoint      = "sublight.endpoint"
	CfgKeyIdleTimeout   = "sublight.idle_timeout"
	CfgKeyMaxTicketWait = "sublight.max_ticket_wait"
	CfgKeyRateLimit     = "sublight.rate_limit"
	CfgKeyNaming        = "naming"
	CfgKeyCacheProvider = "cache.provider"
	CfgKeyCacheSize     = "cache.size"
	CfgKeyCacheTTL      = "cache.ttl"
	CfgKeyRedisAddress  = "cache.redis.address"
	CfgKeyRedisPassword = "cache.redis.password"
	CfgKeyRedisDB       = "cache.redis.db"
	CfgKeyLogLevel      = "log.level"
	CfgKeyMetricsAddr   = "metrics.address"
)

// envPrefix is prepended to every configuration key, e.g. SUBLIGHT_SUBLIGHT_CLIENTID.
const envPrefix = "SUBLIGHT"

var (
	// Used for flags.
	cfgFile string

	logger = logrus.New()

	// RootCmd represents the base command when called without any subcommands
	// Exported for use in tests
	RootCmd = &cobra.Command{
		Use:   "sublight",
		Short: "A CLI tool to search, download and publish subtitles on Sublight.",
		Long: `sublight searches the Sublight subtitle service by movie title or by
video file, downloads matching subtitles next to your videos and publishes
your own subtitles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configureLogging(cmd); err != nil {
				return err
			}
			if address := viper.GetString(CfgKeyMetricsAddr); address != "" {
				srv, err := startMetricsServer(address)
				if err != nil {
					return err
				}
				metricsServer = srv
			}
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(stopMetricsServer)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sublight/config.yaml or ./config.yaml)")
	RootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics at /metrics on this address while the command runs")
	_ = viper.BindPFlag(CfgKeyMetricsAddr, RootCmd.PersistentFlags().Lookup("metrics-addr"))

	viper.SetDefault(CfgKeyIdleTimeout, 10*time.Minute)
	viper.SetDefault(CfgKeyMaxTicketWait, time.Minute)
	viper.SetDefault(CfgKeyNaming, "match-video")
	viper.SetDefault(CfgKeyCacheProvider, "memory")
	viper.SetDefault(CfgKeyCacheSize, 256)
	viper.SetDefault(CfgKeyCacheTTL, time.Hour)
	viper.SetDefault(CfgKeyLogLevel, "warn")
}

// initConfig reads in the config file, a .env file and ENV variables if set.
func initConfig() {
	// A missing .env is fine, most setups only use the config file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error reading .env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".sublight"))
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

func configureLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(viper.GetString(CfgKeyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", CfgKeyLogLevel, err)
	}
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// namingPolicy returns the configured naming policy unless flag overrides it.
func namingPolicy(flag string) (naming.SubtitleNaming, error) {
	if flag == "" {
		flag = viper.GetString(CfgKeyNaming)
	}
	return naming.Parse(flag)
}
