package faceapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the candidate file types a folder search considers.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
}

func isImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Search verifies the probe image against every image in dir and returns
// candidates ranked best first: verified matches before rejected ones, closer
// distances first. Candidates the service fails on are skipped; progress, if
// non-nil, is called after each candidate with its error.
func (c *Client) Search(ctx context.Context, probePath, dir string, progress func(path string, err error)) ([]Match, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if sameFile(path, probePath) {
			continue
		}
		candidates = append(candidates, path)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}

	var matches []Match
	failures := 0
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := c.Verify(ctx, probePath, path)
		if progress != nil {
			progress(path, err)
		}
		if err != nil {
			failures++
			continue
		}
		matches = append(matches, Match{
			Path:      path,
			Distance:  res.Distance,
			Threshold: res.Threshold,
			Verified:  res.Verified,
		})
	}

	if failures == len(candidates) {
		return nil, fmt.Errorf("face service failed for all %d candidates", failures)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Verified != matches[j].Verified {
			return matches[i].Verified
		}
		return matches[i].Distance < matches[j].Distance
	})

	return matches, nil
}

// sameFile reports whether two paths point at the same file, so the probe is
// never compared with itself when it lives inside the searched folder.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
