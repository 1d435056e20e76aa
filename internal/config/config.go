package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	S3      S3Config
	FaceAPI FaceAPIConfig
}

type S3Config struct {
	Region        string        // AWS region, falls back to SDK resolution if empty
	Endpoint      string        // custom endpoint for S3-compatible stores (MinIO etc.)
	UsePathStyle  bool          // path-style addressing, required by most S3-compatible stores
	Bucket        string        // default bucket when none is given on the command line / form
	PartSize      int64         // multipart part size in bytes (default 5 MiB)
	Concurrency   int           // concurrent part uploads per file (default 1, sequential)
	PresignExpiry time.Duration // lifetime of generated pre-signed URLs (default 1h)
}

type FaceAPIConfig struct {
	URL      string // base URL of the DeepFace-compatible face service
	Model    string // recognition model name (default VGG-Face)
	Detector string // detector backend (default opencv)
}

// DefaultPartSize matches the S3 minimum part size. Smaller values are
// rejected by S3 for all parts but the last.
const DefaultPartSize = 5 * 1024 * 1024

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envInt64 is envInt for 64-bit values (byte sizes).
func envInt64(key string, defaultVal int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean. Unset or invalid
// values return the default.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// envDuration reads an environment variable as a time.Duration ("30m", "2h").
// Returns the default value if unset, invalid, or non-positive.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		S3: S3Config{
			Region:        os.Getenv("S3_REGION"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			UsePathStyle:  envBool("S3_USE_PATH_STYLE", false),
			Bucket:        os.Getenv("S3_BUCKET"),
			PartSize:      envInt64("S3_PART_SIZE", DefaultPartSize),
			Concurrency:   envInt("S3_UPLOAD_CONCURRENCY", 1),
			PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),
		},
		FaceAPI: FaceAPIConfig{
			URL:      os.Getenv("FACE_API_URL"),
			Model:    envString("FACE_API_MODEL", "VGG-Face"),
			Detector: envString("FACE_API_DETECTOR", "opencv"),
		},
	}
}
