package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Image formats supported by ScreenshotCapture.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
// An unknown format falls back to PNG.
func NewScreenshotCapture(outputDir, prefix, format string) *ScreenshotCapture {
	format = strings.ToLower(format)
	if format != FormatBMP {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Format returns the image format in use.
func (sc *ScreenshotCapture) Format() string {
	return sc.format
}

// CaptureFromImage writes img to a new timestamped file.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	// Create output directory if needed
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	if err := SaveImage(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// SaveImage writes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Encode(file, img, format)
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}
