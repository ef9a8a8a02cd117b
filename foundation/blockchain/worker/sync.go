package worker

import "context"

// Sync brings the chain up to date with the known peers.
func (w *Worker) Sync() {
	w.evHandler("worker: sync: started")
	defer w.evHandler("worker: sync: completed")

	if len(w.state.RetrieveKnownPeers()) == 0 {
		return
	}

	w.runResolveOperation(context.Background())
}
