package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"finsk-kalender/internal/fetch"
	"finsk-kalender/internal/firestore"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch the calendar and replace its Firestore collection",
	Long: `Fetch the calendar page, extract its service records and atomically
replace the contents of the configured Firestore collection. Meant to run
on a schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := viper.GetString("gcp_project_id")
		if projectID == "" {
			return fmt.Errorf("gcp_project_id is required (flag, config file or KALENDER_GCP_PROJECT_ID)")
		}
		collection := viper.GetString("firestore_collection")

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		client := fetch.New(viper.GetString("url"), viper.GetDuration("timeout"))
		services, err := client.Services(ctx)
		if err != nil {
			return err
		}
		log.Printf("Fetched %d services from %s", len(services), client.URL())

		if len(services) == 0 {
			log.Printf("No services found, leaving collection untouched")
			return nil
		}

		fsClient, err := firestore.New(ctx, projectID, collection)
		if err != nil {
			return fmt.Errorf("initializing firestore: %w", err)
		}
		defer fsClient.Close()

		batchID := time.Now().UTC().Format("20060102-150405")
		if err := fsClient.ReplaceCalendar(ctx, services, batchID); err != nil {
			return fmt.Errorf("storing services: %w", err)
		}

		log.Printf("Stored %d services in %s/%s (batch %s)", len(services), projectID, collection, batchID)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("project", "", "GCP project ID")
	ingestCmd.Flags().String("collection", "", "Firestore collection name")
	_ = viper.BindPFlag("gcp_project_id", ingestCmd.Flags().Lookup("project"))
	_ = viper.BindPFlag("firestore_collection", ingestCmd.Flags().Lookup("collection"))

	rootCmd.AddCommand(ingestCmd)
}
