package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// ThumbnailWidth / ThumbnailHeight fixed output frame
const (
	ThumbnailWidth  = 320
	ThumbnailHeight = 240
)

// Thumbnailer derives a thumbnail image from a staged video file. One call,
// one failure mode, so the upload pipeline can recover from it locally.
type Thumbnailer interface {
	Derive(ctx context.Context, inputPath string) (string, error)
}

// FFmpegThumbnailer shells out to ffmpeg. The thumbnail filter picks the most
// representative frame of the stream, then the result is scaled to cover the
// target box and center-cropped.
type FFmpegThumbnailer struct {
	TempDir string
}

// NewFFmpegThumbnailer create a FFmpegThumbnailer writing into tempDir
func NewFFmpegThumbnailer(tempDir string) *FFmpegThumbnailer {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &FFmpegThumbnailer{TempDir: tempDir}
}

// Derive extract a representative frame and resize it to 320x240
func (t *FFmpegThumbnailer) Derive(ctx context.Context, inputPath string) (string, error) {
	if err := os.MkdirAll(t.TempDir, 0755); err != nil {
		return "", fmt.Errorf("建立暫存目錄失敗: %w", err)
	}
	outputPath := filepath.Join(t.TempDir, fmt.Sprintf("thumb_%s.jpg", uuid.New().String()))

	vf := fmt.Sprintf("thumbnail,scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		ThumbnailWidth, ThumbnailHeight, ThumbnailWidth, ThumbnailHeight)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", inputPath,
		"-vf", vf,
		"-frames:v", "1",
		"-y",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, string(output))
	}
	return outputPath, nil
}
