package renderer

import (
	"sync"

	"github.com/df07/stray/pkg/geometry"
)

// RowTask asks a worker to render one camera row
type RowTask struct {
	Y int
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Hits int
}

// WorkerPool manages parallel row rendering into a shared framebuffer
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows with its own intersect context
type Worker struct {
	ID          int
	raytracer   *Raytracer
	framebuffer *Framebuffer
	ctx         *geometry.IntersectContext
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(rt *Raytracer, fb *Framebuffer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	// Buffer every row so submitting and collecting never block each other
	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, fb.Height),
		resultQueue: make(chan RowResult, fb.Height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			framebuffer: fb,
			ctx:         geometry.NewIntersectContext(),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for all submitted rows to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Rows never overlap, so writing straight into
// the shared framebuffer needs no locking.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		hits := w.raytracer.renderRow(task.Y, w.ctx, w.framebuffer)
		w.resultQueue <- RowResult{Hits: hits}
	}
}
