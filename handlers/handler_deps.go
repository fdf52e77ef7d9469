package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"transcriptly/api-gateway/internal/objectstore"
	"transcriptly/api-gateway/internal/pipeline"
	"transcriptly/api-gateway/internal/store"
	"transcriptly/api-gateway/internal/worker"
)

var validate = validator.New()

// ApplicationHandler holds shared dependencies for handlers. Everything is an
// interface or injected value so tests can swap the cloud-backed pieces out.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	Store      store.MetadataStore
	Objects    objectstore.Signer
	Processor  *pipeline.Processor
	Dispatcher *worker.Dispatcher
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(logger *logrus.Logger, metadata store.MetadataStore, objects objectstore.Signer, processor *pipeline.Processor, dispatcher *worker.Dispatcher) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:     logger,
		Store:      metadata,
		Objects:    objects,
		Processor:  processor,
		Dispatcher: dispatcher,
	}
}
