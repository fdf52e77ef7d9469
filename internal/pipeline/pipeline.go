package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"transcriptly/api-gateway/internal/objectstore"
	"transcriptly/api-gateway/internal/speech"
	"transcriptly/api-gateway/internal/store"
	"transcriptly/api-gateway/models"
)

// AudioExtractor decodes a video file's audio track into the WAV layout the
// recognizer expects.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Processor turns one version's referenced video into a transcript: download,
// audio extraction, recognition, persistence.
type Processor struct {
	Store      store.MetadataStore
	Objects    objectstore.Signer
	Recognizer speech.Recognizer
	Extractor  AudioExtractor
	Logger     *logrus.Logger
}

func NewProcessor(metadata store.MetadataStore, objects objectstore.Signer, recognizer speech.Recognizer, extractor AudioExtractor, logger *logrus.Logger) *Processor {
	return &Processor{
		Store:      metadata,
		Objects:    objects,
		Recognizer: recognizer,
		Extractor:  extractor,
		Logger:     logger,
	}
}

// Process runs the pipeline for one version. On any failure the version is
// persisted as failed, with the error captured verbatim, before the error is
// returned to the caller; a version never stays in processing after a run.
func (p *Processor) Process(ctx context.Context, version models.Version) error {
	err := p.run(ctx, &version)
	if err == nil {
		return nil
	}

	p.Logger.WithFields(logrus.Fields{
		"version_id": version.ID,
		"video_id":   version.VideoID,
		"error":      err.Error(),
	}).Error("Processing pipeline failed")

	message := err.Error()
	version.Status = models.StatusFailed
	version.ErrorMessage = &message
	if saveErr := p.Store.SaveVersion(ctx, version); saveErr != nil {
		p.Logger.WithFields(logrus.Fields{
			"version_id": version.ID,
			"error":      saveErr.Error(),
		}).Error("Failed to record processing failure")
	}
	return err
}

func (p *Processor) run(ctx context.Context, version *models.Version) error {
	// Scratch files live for exactly one invocation.
	tempDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	videoPath := filepath.Join(tempDir, "video.mp4")
	audioPath := filepath.Join(tempDir, "audio.wav")

	if err := p.Objects.Download(ctx, version.VideoID, videoPath); err != nil {
		return fmt.Errorf("download video %s: %w", version.VideoID, err)
	}
	if err := p.Extractor.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}

	words, err := p.Recognizer.Recognize(ctx, audio)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	version.Transcript = words
	version.Status = models.StatusCompleted
	if err := p.Store.SaveVersion(ctx, *version); err != nil {
		return fmt.Errorf("save completed version %s: %w", version.ID, err)
	}

	p.Logger.WithFields(logrus.Fields{
		"version_id": version.ID,
		"word_count": len(words),
	}).Info("Processing pipeline completed")
	return nil
}
