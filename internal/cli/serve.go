package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"finsk-kalender/internal/cache"
	"finsk-kalender/internal/fetch"
	"finsk-kalender/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calendar over HTTP",
	Long: `Start an HTTP server exposing the extracted services as JSON on
/services and a small HTML page on /. Results are cached on disk so the
church site is only fetched when the cache TTL expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := viper.GetString("port")
		cacheDir := viper.GetString("cache_dir")
		cacheTTL := viper.GetDuration("cache_ttl")

		c, err := cache.New(cacheDir, cacheTTL)
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}

		client := fetch.New(viper.GetString("url"), viper.GetDuration("timeout"))
		handler := web.New(client, c)

		mux := http.NewServeMux()
		handler.RegisterRoutes(mux)

		log.Printf("Server starting on port %s", port)
		log.Printf("Cache directory: %s (TTL %s)", cacheDir, cacheTTL)
		log.Printf("Calendar source: %s", client.URL())

		return http.ListenAndServe(":"+port, mux)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
