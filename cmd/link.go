package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/objectstore"
)

var linkCmd = &cobra.Command{
	Use:   "link <bucket> <session-id>",
	Short: "Generate fresh pre-signed links for a past session",
	Long: `Link re-signs every object of a past upload session. Pre-signed URLs
expire, so this is how a gallery is shared again after its original
links have gone stale.

Example:
  photodrive link my-photo-bucket 2f1f2c1e-8a3b-4e6d-9b7a-1c2d3e4f5a6b
  photodrive link --expiry 24h my-photo-bucket 2f1f2c1e-8a3b-4e6d-9b7a-1c2d3e4f5a6b`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().Duration("expiry", 0, "Pre-signed URL lifetime (default from S3_PRESIGN_EXPIRY)")
}

func runLink(cmd *cobra.Command, args []string) error {
	bucket, sessionID := args[0], args[1]
	expiry := mustGetDuration(cmd, "expiry")

	cfg := config.Load()
	if expiry <= 0 {
		expiry = cfg.S3.PresignExpiry
	}

	ctx := cmd.Context()
	store, err := objectstore.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to set up object store: %w", err)
	}

	keys, err := store.ListSessionObjects(ctx, bucket, sessionID)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("session %s not found in bucket %s", sessionID, bucket)
	}

	fmt.Printf("Session %s (%d object(s), links expire in %s)\n\n", sessionID, len(keys), expiry)
	for _, key := range keys {
		url, err := store.PresignGet(ctx, bucket, key, expiry)
		if err != nil {
			return fmt.Errorf("presigning %s: %w", key, err)
		}
		fmt.Printf("  %s\n  %s\n\n", path.Base(key), url)
	}
	return nil
}
