package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/faceapi"
)

var searchCmd = &cobra.Command{
	Use:   "search <probe-image> <folder>",
	Short: "Find the photos of a person in a folder",
	Long: `Search compares the face in the probe image against every image in the
folder and ranks the candidates: confirmed matches first, closest first.
Images the face service cannot process are skipped with a warning.

Example:
  photodrive search alice.jpg /path/to/photos`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	probe, folder := args[0], args[1]

	cfg := config.Load()
	client, err := faceapi.New(cfg.FaceAPI.URL, cfg.FaceAPI.Model, cfg.FaceAPI.Detector)
	if err != nil {
		return fmt.Errorf("face service is not configured: %w", err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Comparing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionSpinnerType(14),
	)

	var skipped []string
	matches, err := client.Search(cmd.Context(), probe, folder, func(path string, err error) {
		bar.Add(1)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		}
	})
	fmt.Println()
	if err != nil {
		return err
	}

	for _, msg := range skipped {
		fmt.Fprintf(os.Stderr, "Skipped %s\n", msg)
	}

	found := 0
	for _, m := range matches {
		if m.Verified {
			found++
		}
	}
	fmt.Printf("\n%d of %d image(s) match %s\n\n", found, len(matches), filepath.Base(probe))

	for _, m := range matches {
		mark := " "
		if m.Verified {
			mark = "*"
		}
		fmt.Printf("  %s %-40s distance %.4f (threshold %.4f)\n", mark, filepath.Base(m.Path), m.Distance, m.Threshold)
	}
	return nil
}
