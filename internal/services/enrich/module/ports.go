package module

import dom "truthlens/internal/services/enrich/domain"

// Ports holds the ports exposed by the enrich module
type Ports struct {
	Worker   dom.WorkerPort
	Enqueuer dom.EnqueuePort
}
