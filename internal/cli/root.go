// Package cli wires the command-line interface: thin cobra commands over
// the fetch, calendar, store, report, web and firestore packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"finsk-kalender/internal/fetch"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kalender",
	Short: "Fetch and display the Finnish Orthodox Congregation calendar",
	Long: `kalender fetches the public service calendar of the Finnish Orthodox
Congregation in Sweden (ortodox-finsk.se), extracts one structured record
per calendar entry, and saves, prints, serves or ingests the result.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kalender v1.0.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.kalender/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig sets defaults and reads the config file and KALENDER_* env
// variables. Precedence: flags, then env, then config file, then defaults.
func initConfig() {
	viper.SetDefault("url", fetch.DefaultURL)
	viper.SetDefault("timeout", fetch.DefaultTimeout)
	viper.SetDefault("store_dir", ".")
	viper.SetDefault("gcs_bucket", "")
	viper.SetDefault("cache_dir", "cache")
	viper.SetDefault("cache_ttl", "6h")
	viper.SetDefault("port", "8080")
	viper.SetDefault("gcp_project_id", "")
	viper.SetDefault("firestore_collection", "services")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.kalender")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("KALENDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
