package pathfinding

// Metrics receives counters from the graph. Implementations must be cheap;
// they are called from the tick loop.
type Metrics interface {
	// DiscoveryFinished is called once per finished discovery item.
	DiscoveryFinished(outcome DiscoveryOutcome, steps int)
	// QueueDepth reports the number of queued discovery items after a tick.
	QueueDepth(depth int)
	// SearchCompleted is called for every route lookup.
	SearchCompleted(cached, found bool)
	// NodeCount reports the number of nodes in a world after it changed.
	NodeCount(world string, count int)
}

type noopMetrics struct{}

func (noopMetrics) DiscoveryFinished(DiscoveryOutcome, int) {}
func (noopMetrics) QueueDepth(int)                          {}
func (noopMetrics) SearchCompleted(bool, bool)              {}
func (noopMetrics) NodeCount(string, int)                   {}
