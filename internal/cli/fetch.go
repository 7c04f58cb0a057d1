package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"finsk-kalender/internal/fetch"
	"finsk-kalender/internal/store"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the calendar page and save the services as JSON",
	Long: `Fetch the calendar page, extract its service records and save them as
a JSON array, either to a local file (store_dir/calendar.json) or to a
Cloud Storage bucket when gcs_bucket is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("timeout"))
		defer cancel()

		client := fetch.New(viper.GetString("url"), viper.GetDuration("timeout"))
		fmt.Printf("Fetching church calendar from %s...\n", client.URL())

		services, err := client.Services(ctx)
		if err != nil {
			return err
		}

		if len(services) == 0 {
			fmt.Println("No services found.")
			return nil
		}

		s, target, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := s.SetJSON(store.CalendarKey, services); err != nil {
			return fmt.Errorf("saving calendar: %w", err)
		}

		fmt.Printf("Saved %d services to %s\n", len(services), target)
		return nil
	},
}

// openStore picks the configured sink: GCS when a bucket is set, local
// disk otherwise. The second return value describes the target for
// user-facing output.
func openStore(ctx context.Context) (store.Store, string, error) {
	if bucket := viper.GetString("gcs_bucket"); bucket != "" {
		gcs, err := store.NewGCS(ctx, bucket)
		if err != nil {
			return nil, "", fmt.Errorf("initializing GCS store: %w", err)
		}
		return gcs, fmt.Sprintf("gs://%s/%s.json", bucket, store.CalendarKey), nil
	}

	dir := viper.GetString("store_dir")
	local, err := store.NewLocal(dir)
	if err != nil {
		return nil, "", fmt.Errorf("initializing local store: %w", err)
	}
	return local, filepath.Join(dir, store.CalendarKey+".json"), nil
}

func init() {
	fetchCmd.Flags().String("url", "", "calendar page URL")
	fetchCmd.Flags().String("store-dir", "", "directory for the saved JSON file")
	fetchCmd.Flags().String("gcs-bucket", "", "save to this GCS bucket instead of local disk")
	_ = viper.BindPFlag("url", fetchCmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("store_dir", fetchCmd.Flags().Lookup("store-dir"))
	_ = viper.BindPFlag("gcs_bucket", fetchCmd.Flags().Lookup("gcs-bucket"))

	rootCmd.AddCommand(fetchCmd)
}
