package gallery

import (
	"strings"
	"testing"
)

func TestRender_ContainsAllImages(t *testing.T) {
	images := []Image{
		{Name: "sunset.jpg", URL: "https://signed.example/uploads/s1/sunset.jpg?sig=abc"},
		{Name: "beach.png", URL: "https://signed.example/uploads/s1/beach.png?sig=def"},
	}

	out, err := Render(images)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := string(out)
	for _, img := range images {
		if !strings.Contains(html, img.Name) {
			t.Errorf("expected gallery to contain name %q", img.Name)
		}
	}
	if !strings.Contains(html, "sunset.jpg?sig=abc") {
		t.Error("expected gallery to contain the pre-signed URL")
	}

	if got := strings.Count(html, "image-container"); got <= 2 {
		// one occurrence in CSS plus one per image
		t.Errorf("expected one card per image, got %d container occurrences", got)
	}
}

func TestRender_Empty(t *testing.T) {
	out, err := Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "Uploaded Images") {
		t.Error("expected page heading even with no images")
	}
	if strings.Contains(html, "<img") {
		t.Error("expected no image tags for empty input")
	}
}

func TestRender_EscapesNames(t *testing.T) {
	out, err := Render([]Image{
		{Name: `<script>alert("x")</script>.jpg`, URL: "https://signed.example/x.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(string(out), "<script>alert") {
		t.Error("file name was not HTML-escaped")
	}
}
