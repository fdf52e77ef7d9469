package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ExtractAudio decodes the audio track of videoPath into a mono 16kHz WAV at
// audioPath, the sample layout the speech recognizer expects.
func ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	// ffmpeg -y -i <video> -ac 1 -ar 16000 -f wav <audio>
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		audioPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %v\nStderr: %s", err, stderr.String())
	}
	return nil
}

// Extractor adapts ExtractAudio to the pipeline's AudioExtractor interface.
type Extractor struct{}

func (Extractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	return ExtractAudio(ctx, videoPath, audioPath)
}
