package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photodrive",
	Short: "A CLI tool for sharing photo batches through S3 galleries",
	Long: `Photo Drive uploads batches of photos into an S3-compatible bucket,
publishes a gallery page with pre-signed links for each batch, and can
verify faces across images through a DeepFace-compatible service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
