// Package annotate draws detected facial areas onto images so verification
// results can be inspected visually.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/photodrive/photodrive/internal/faceapi"
)

// Same look as the classic demo overlay: 3 px red border.
const borderWidth = 3

var boxColor = color.RGBA{R: 255, A: 255}

// Box copies the source image, draws the facial area rectangle with an
// optional label, and writes the result to outPath. The output format is
// chosen by the output file extension (.jpg/.jpeg or .png).
func Box(srcPath string, region faceapi.Region, label, outPath string) error {
	src, err := decode(srcPath)
	if err != nil {
		return err
	}

	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)

	rect := image.Rect(region.X, region.Y, region.X+region.W, region.Y+region.H).
		Intersect(dst.Bounds())
	if rect.Empty() {
		return fmt.Errorf("facial area %+v lies outside the image bounds %v", region, dst.Bounds())
	}

	drawBorder(dst, rect)
	if label != "" {
		drawLabel(dst, rect, label)
	}

	return encode(outPath, dst)
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path) //nolint:gosec // user-provided image path
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %s: %w", path, err)
	}
	return img, nil
}

func encode(path string, img image.Image) error {
	out, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, img, nil)
	case ".png":
		err = png.Encode(out, img)
	default:
		return fmt.Errorf("unsupported output format %q, use .jpg or .png", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("could not encode output image: %w", err)
	}
	return nil
}

// drawBorder paints the four edge strips of the rectangle. Strips are clamped
// to the image so faces touching the frame edge still render.
func drawBorder(dst *image.RGBA, rect image.Rectangle) {
	fill := image.NewUniform(boxColor)
	strips := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+borderWidth), // top
		image.Rect(rect.Min.X, rect.Max.Y-borderWidth, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+borderWidth, rect.Max.Y), // left
		image.Rect(rect.Max.X-borderWidth, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}
	for _, strip := range strips {
		draw.Draw(dst, strip.Intersect(dst.Bounds()), fill, image.Point{}, draw.Src)
	}
}

// drawLabel renders the label just above the rectangle, or inside its top
// edge when there is no room above.
func drawLabel(dst *image.RGBA, rect image.Rectangle, label string) {
	face := basicfont.Face7x13
	y := rect.Min.Y - 4
	if y-face.Ascent < dst.Bounds().Min.Y {
		y = rect.Min.Y + borderWidth + face.Ascent + 2
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(boxColor),
		Face: face,
		Dot:  fixed.P(rect.Min.X, y),
	}
	d.DrawString(label)
}
