package jobs

import (
	"context"

	"github.com/google/uuid"

	"transcriptly/api-gateway/internal/pipeline"
	"transcriptly/api-gateway/models"
)

// TranscribeJob runs the processing pipeline for one version on a background
// worker. The job outlives the request that created it, so it executes under
// its own context.
type TranscribeJob struct {
	JobID     string
	Version   models.Version
	Processor *pipeline.Processor
}

func NewTranscribeJob(version models.Version, processor *pipeline.Processor) *TranscribeJob {
	return &TranscribeJob{
		JobID:     uuid.NewString(),
		Version:   version,
		Processor: processor,
	}
}

// Execute runs the pipeline. The pipeline persists failure state itself; the
// returned error is for the worker's logging only.
func (j *TranscribeJob) Execute() error {
	return j.Processor.Process(context.Background(), j.Version)
}

func (j *TranscribeJob) ID() string { return j.JobID }

func (j *TranscribeJob) VersionID() string { return j.Version.ID }
