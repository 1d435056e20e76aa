package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/objectstore"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <bucket>",
	Short: "List past upload sessions in a bucket",
	Long: `Sessions lists every upload session found under the uploads/ prefix of
a bucket, with the number of files in each and whether a gallery page
was published.

Example:
  photodrive sessions my-photo-bucket`,
	Args: cobra.ExactArgs(1),
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	bucket := args[0]

	cfg := config.Load()
	ctx := cmd.Context()
	store, err := objectstore.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to set up object store: %w", err)
	}

	sessions, err := store.ListSessions(ctx, bucket)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Printf("No upload sessions found in bucket %s\n", bucket)
		return nil
	}

	fmt.Printf("Found %d session(s) in bucket %s\n\n", len(sessions), bucket)
	for _, s := range sessions {
		gallery := "no gallery"
		if s.HasGallery {
			gallery = "gallery published"
		}
		fmt.Printf("  %s  %d file(s), %s\n", s.ID, s.Objects, gallery)
	}
	return nil
}
