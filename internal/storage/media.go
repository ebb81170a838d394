package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns the duration of a media file in seconds.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}

	var meta struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}

	duration, err := strconv.ParseFloat(meta.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", meta.Format.Duration, err)
	}
	return duration, nil
}

// ExtractThumbnail grabs a single frame one second in and writes it as a JPEG
// next to nothing else in outputDir. Returns the written file path.
func ExtractThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create thumbnail dir: %w", err)
	}
	outputPath := filepath.Join(outputDir, "thumbnail.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:01",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("generate thumbnail: %w", err)
	}
	return outputPath, nil
}
