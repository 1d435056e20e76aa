package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photodrive/photodrive/internal/annotate"
	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/faceapi"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <image1> <image2>",
	Short: "Verify whether two images show the same person",
	Long: `Verify compares the faces in two images through the configured
DeepFace-compatible service and reports whether they belong to the
same person, along with the measured distance and the model threshold.

With -o, a copy of the first image is written with the detected face
framed and labeled.

Example:
  photodrive verify alice.jpg passport.jpg
  photodrive verify -o framed.jpg alice.jpg passport.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringP("output", "o", "", "Write the first image with the detected face framed to this path")
}

func runVerify(cmd *cobra.Command, args []string) error {
	img1, img2 := args[0], args[1]
	output := mustGetString(cmd, "output")

	cfg := config.Load()
	client, err := faceapi.New(cfg.FaceAPI.URL, cfg.FaceAPI.Model, cfg.FaceAPI.Detector)
	if err != nil {
		return fmt.Errorf("face service is not configured: %w", err)
	}

	result, err := client.Verify(cmd.Context(), img1, img2)
	if err != nil {
		return fmt.Errorf("face verification failed: %w", err)
	}

	if result.Verified {
		fmt.Println("Same person: yes")
	} else {
		fmt.Println("Same person: no")
	}
	fmt.Printf("  Distance:  %.4f (threshold %.4f)\n", result.Distance, result.Threshold)
	fmt.Printf("  Model:     %s (%s)\n", result.Model, result.DetectorBackend)

	if output != "" {
		label := fmt.Sprintf("match %.2f", result.Distance)
		if !result.Verified {
			label = fmt.Sprintf("no match %.2f", result.Distance)
		}
		if err := annotate.Box(img1, result.FacialAreas.Img1, label, output); err != nil {
			return fmt.Errorf("failed to write annotated image: %w", err)
		}
		fmt.Printf("\nAnnotated image written to %s\n", output)
	}

	return nil
}
