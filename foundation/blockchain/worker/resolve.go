package worker

import "context"

// resolveOperations handles resolving the chain against the known peers on
// an interval.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	// Abandon a resolution in progress on shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-w.shut
		cancel()
	}()

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runResolveOperation(ctx)
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// runResolveOperation replaces the chain when a peer holds a longer valid one.
func (w *Worker) runResolveOperation(ctx context.Context) {
	w.evHandler("worker: runResolveOperation: started")
	defer w.evHandler("worker: runResolveOperation: completed")

	replaced, blocks, err := w.state.Resolve(ctx)
	if err != nil {
		w.evHandler("worker: runResolveOperation: ERROR: %s", err)
		return
	}

	if replaced {
		w.evHandler("worker: runResolveOperation: chain replaced: length[%d]", len(blocks))
	}
}
