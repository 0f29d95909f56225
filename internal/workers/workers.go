package workers

type Workers struct {
	workers []Worker
}

// NewWorkers groups the given workers so they can be started together.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
