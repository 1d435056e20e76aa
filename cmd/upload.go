package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/objectstore"
	"github.com/photodrive/photodrive/internal/uploader"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <bucket> <path> [path...]",
	Short: "Upload photos to a bucket and publish a gallery",
	Long: `Upload photos into a fresh session folder in an S3 bucket and publish
a gallery page linking them all with pre-signed URLs.

Each path may be a single image or a folder. By default, only files directly
inside a folder are uploaded (non-recursive). Use -r to search subdirectories.
Supported formats: jpg, jpeg, png, gif, heic, heif, webp, tiff, bmp

Example:
  photodrive upload my-photo-bucket /path/to/photos
  photodrive upload my-photo-bucket holiday.jpg sunset.png
  photodrive upload -r my-photo-bucket /path/to/photos  # recursive search`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolP("recursive", "r", false, "Search for photos recursively in subdirectories")
	uploadCmd.Flags().Duration("expiry", 0, "Pre-signed URL lifetime (default from S3_PRESIGN_EXPIRY)")
}

// isImageFile checks if a file has a supported image extension
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".heic": true,
		".heif": true,
		".webp": true,
		".tiff": true,
		".tif":  true,
		".bmp":  true,
	}
	return supported[ext]
}

// collectFiles expands each argument into image file paths. Plain files are
// taken as-is, folders are filtered to supported image extensions.
func collectFiles(paths []string, recursive bool) ([]string, error) {
	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			filePaths = append(filePaths, path)
			continue
		}

		if recursive {
			err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isImageFile(d.Name()) {
					filePaths = append(filePaths, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("cannot walk folder %s: %w", path, err)
			}
		} else {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("cannot read folder %s: %w", path, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if isImageFile(entry.Name()) {
					filePaths = append(filePaths, filepath.Join(path, entry.Name()))
				}
			}
		}
	}
	return filePaths, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	bucket := args[0]
	recursive := mustGetBool(cmd, "recursive")
	expiry := mustGetDuration(cmd, "expiry")

	cfg := config.Load()
	if expiry <= 0 {
		expiry = cfg.S3.PresignExpiry
	}

	filePaths, err := collectFiles(args[1:], recursive)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified paths.")
		return nil
	}

	fmt.Printf("Found %d image(s) to upload\n", len(filePaths))

	ctx := cmd.Context()
	store, err := objectstore.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to set up object store: %w", err)
	}

	uploadBar := progressbar.NewOptions(len(filePaths),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	session := uploader.NewSession(store, bucket, expiry)
	result, err := session.UploadAll(ctx, filePaths, func(name string, err error) {
		uploadBar.Add(1)
	})
	fmt.Println()

	for _, errMsg := range result.Errors {
		fmt.Printf("Failed: %s\n", errMsg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nUploaded %d file(s) to session %s\n\n", len(result.Links), result.SessionID)
	for _, link := range result.Links {
		fmt.Printf("  %s\n  %s\n\n", link.Name, link.URL)
	}
	fmt.Printf("Gallery: %s\n", result.GalleryURL)
	fmt.Printf("Links expire in %s\n", expiry)
	return nil
}
