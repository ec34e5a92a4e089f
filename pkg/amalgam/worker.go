// File: pkg/amalgam/worker.go
package amalgam

import (
	"runtime"
	"sync"

	"amalgam/pkg/boilerplate"

	"go.uber.org/zap"
)

type inspectJob struct {
	index int
	input Input
}

type inspectResult struct {
	index      int
	inspection Inspection
	err        error
}

// InspectFilesConcurrently inspects inputs using a worker pool. Results come
// back in input order; the first error in that order is returned.
func InspectFilesConcurrently(inputs []Input, maxWorkers int, filter boilerplate.Matcher, logger *zap.Logger) ([]Inspection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	jobs := make(chan inspectJob, len(inputs))
	results := make(chan inspectResult, len(inputs))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(w, jobs, results, filter, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i, in := range inputs {
		jobs <- inspectJob{index: i, input: in}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	inspections := make([]Inspection, len(inputs))
	errs := make([]error, len(inputs))
	for r := range results {
		inspections[r.index] = r.inspection
		errs[r.index] = r.err
	}

	for _, err := range errs {
		if err != nil {
			return inspections, err
		}
	}
	logger.Debug("All files inspected", zap.Int("inspectedFiles", len(inspections)))
	return inspections, nil
}

// worker is a goroutine that inspects files from the jobs channel.
func worker(id int, jobs <-chan inspectJob, results chan<- inspectResult, filter boilerplate.Matcher, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()
	logger.Debug("Worker started")

	for job := range jobs {
		inspection, err := InspectFile(job.input, filter, logger)
		if err != nil {
			logger.Error("Worker failed to inspect file",
				zap.String("filePath", job.input.Path),
				zap.Error(err))
			inspection.Err = err
		}
		results <- inspectResult{index: job.index, inspection: inspection, err: err}
	}

	logger.Debug("Worker finished processing", zap.Int("workerID", id))
}
