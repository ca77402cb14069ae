package resilience

import "sync"

type (
	// ReadinessStatus is the result of checking all registered policies.
	ReadinessStatus struct {
		Policies []PolicyStatus `json:"policies"`
		Ready    bool           `json:"ready"`
	}

	// Registry tracks the policies of a process and derives readiness from
	// their health.
	Registry struct {
		mu        sync.RWMutex
		reporters []HealthReporter
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds hr to the registry. Policies call it from [NewPolicy].
func (r *Registry) Register(hr HealthReporter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reporters = append(r.reporters, hr)
}

// CheckReadiness reports every registered policy. The process is not ready
// while any critical policy is unhealthy.
func (r *Registry) CheckReadiness() ReadinessStatus {
	r.mu.RLock()
	reporters := make([]HealthReporter, len(r.reporters))
	copy(reporters, r.reporters)
	r.mu.RUnlock()

	status := ReadinessStatus{
		Ready:    true,
		Policies: make([]PolicyStatus, 0, len(reporters)),
	}

	for _, hr := range reporters {
		ps := hr.HealthStatus()
		status.Policies = append(status.Policies, ps)

		if ps.Criticality == CriticalityCritical && !ps.Healthy {
			status.Ready = false
		}
	}

	return status
}
