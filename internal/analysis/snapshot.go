package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.design/x/clipboard"
)

var clipboardReady bool

func init() {
	// Clipboard init fails on headless hosts; snapshots still save to disk.
	clipboardReady = clipboard.Init() == nil
}

// SaveSnapshot writes the composited board to a timestamped PNG under dir
// and returns the file path.
func SaveSnapshot(dir string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("board_20060102_150405.png"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return path, nil
}

// CopyToClipboard places the composited board on the system clipboard as a
// PNG image.
func CopyToClipboard(img image.Image) error {
	if !clipboardReady {
		return fmt.Errorf("clipboard is unavailable on this system")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
