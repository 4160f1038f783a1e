package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	EnvAssetDir      = "RMS_ASSET_DIR"
	EnvMaxUploadSize = "RMS_MAX_UPLOAD_SIZE"
)

// AssetsConfig locates the slide image directory and bounds upload size.
type AssetsConfig struct {
	// Dir is the directory holding slide images. Default: "img/slides"
	Dir string `toml:"dir"`
	// MaxUploadSize is a human readable size such as "10MB".
	MaxUploadSize string `toml:"max_upload_size"`

	maxUploadSize int64
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes after Finalize.
func (c *AssetsConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSize
}

func (c *AssetsConfig) Finalize() error {
	if c.Dir == "" {
		c.Dir = "img/slides"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if v := os.Getenv(EnvAssetDir); v != "" {
		c.Dir = v
	}
	if v := os.Getenv(EnvMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSize = size
	return nil
}
