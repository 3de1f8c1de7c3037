package renderer

import (
	"sync"
)

// TileResult reports a finished tile back to the dispatcher.
type TileResult struct {
	Tile *Tile
}

// WorkerPool renders tiles on a fixed set of goroutines. Tiles have
// disjoint bounds, so workers can write into a shared framebuffer without
// coordination.
type WorkerPool struct {
	taskQueue   chan *Tile
	resultQueue chan TileResult
	numWorkers  int
	render      func(*Tile)
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool that applies render to each submitted tile.
// queueSize should hold every tile of the image so submission never blocks.
func NewWorkerPool(numWorkers, queueSize int, render func(*Tile)) *WorkerPool {
	return &WorkerPool{
		taskQueue:   make(chan *Tile, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
		render:      render,
	}
}

// Start begins all workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// run is the main worker loop.
func (wp *WorkerPool) run() {
	defer wp.wg.Done()
	for tile := range wp.taskQueue {
		wp.render(tile)
		wp.resultQueue <- TileResult{Tile: tile}
	}
}

// SubmitTask submits a tile to the worker pool.
func (wp *WorkerPool) SubmitTask(tile *Tile) {
	wp.taskQueue <- tile
}

// GetResult retrieves a completed tile result, blocking until one is
// available. The second return value is false once the pool has stopped
// and the result queue is drained.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Stop gracefully shuts down all workers.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// GetNumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
