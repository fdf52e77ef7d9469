package worker

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is a unit of background work tied to one version.
type Job interface {
	Execute() error
	ID() string
	VersionID() string
}

// Worker pulls jobs from its own channel after registering it with the
// shared pool.
type Worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan bool
	wg         *sync.WaitGroup
	logger     *logrus.Logger
	done       func(Job)
}

func newWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, logger *logrus.Logger, done func(Job)) Worker {
	return Worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan bool),
		wg:         wg,
		logger:     logger,
		done:       done,
	}
}

// Start makes the worker listen for jobs on its channel.
func (w Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				entry := w.logger.WithFields(logrus.Fields{
					"worker":     w.id,
					"job_id":     job.ID(),
					"version_id": job.VersionID(),
				})
				entry.Info("Job started")
				if err := job.Execute(); err != nil {
					entry.WithField("error", err.Error()).Error("Job failed")
				} else {
					entry.Info("Job finished")
				}
				w.done(job)
			case <-w.quit:
				return
			}
		}
	}()
}

// Stop signals the worker to exit after its current job.
func (w Worker) Stop() {
	go func() {
		w.quit <- true
	}()
}

// Dispatcher runs a fixed pool of workers over a buffered job queue. Every
// submitted job is recorded against its version id until it finishes, so a
// pending transcription is observable and a future retry or cancel has a
// handle to work with.
type Dispatcher struct {
	maxWorkers int
	jobQueue   chan Job
	workerPool chan chan Job
	workers    []Worker
	wg         sync.WaitGroup
	quit       chan bool
	logger     *logrus.Logger

	mu     sync.Mutex
	active map[string]string // version id -> job id
}

func NewDispatcher(maxWorkers, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		maxWorkers: maxWorkers,
		jobQueue:   make(chan Job, jobQueueSize),
		workerPool: make(chan chan Job, maxWorkers),
		workers:    make([]Worker, 0, maxWorkers),
		quit:       make(chan bool),
		logger:     logger,
		active:     make(map[string]string),
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	for i := 1; i <= d.maxWorkers; i++ {
		worker := newWorker(i, d.workerPool, &d.wg, d.logger, d.finish)
		d.workers = append(d.workers, worker)
		worker.Start()
	}
	go d.dispatch()
	d.logger.Infof("Dispatcher running with %d workers", d.maxWorkers)
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			go func(job Job) {
				jobChannel := <-d.workerPool
				jobChannel <- job
			}(job)
		case <-d.quit:
			return
		}
	}
}

// Submit queues a job and records it against its version id. A full queue is
// an error rather than a silent drop.
func (d *Dispatcher) Submit(job Job) error {
	d.mu.Lock()
	d.active[job.VersionID()] = job.ID()
	d.mu.Unlock()

	select {
	case d.jobQueue <- job:
		return nil
	default:
		d.finish(job)
		return fmt.Errorf("job queue full, cannot submit job %s", job.ID())
	}
}

// Active reports the job id currently pending or running for a version.
func (d *Dispatcher) Active(versionID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	jobID, ok := d.active[versionID]
	return jobID, ok
}

func (d *Dispatcher) finish(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active[job.VersionID()] == job.ID() {
		delete(d.active, job.VersionID())
	}
}

// Stop shuts down the dispatch loop and waits for workers to drain.
func (d *Dispatcher) Stop() {
	d.quit <- true
	for _, worker := range d.workers {
		worker.Stop()
	}
	d.wg.Wait()
	d.logger.Info("Dispatcher stopped")
}
