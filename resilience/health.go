package resilience

type (
	// HealthReporter is implemented by every Policy[T]; it is non-generic
	// so policies of different result types share one registry.
	HealthReporter interface {
		Name() string
		HealthStatus() PolicyStatus
	}

	// Criticality represents how an unhealthy policy affects readiness.
	Criticality int

	// PolicyStatus is the current health of one policy.
	PolicyStatus struct {
		Name        string      `json:"name"`
		State       string      `json:"state"`
		Criticality Criticality `json:"criticality"`
		Healthy     bool        `json:"healthy"`
	}
)

const (
	// CriticalityNone means the policy has no persistent health state.
	CriticalityNone Criticality = iota
	// CriticalityDegraded means requests are served but slowed down.
	CriticalityDegraded
	// CriticalityCritical means the upstream is considered down.
	CriticalityCritical
)

// String returns the criticality level as a human-readable string.
func (c Criticality) String() string {
	switch c {
	case CriticalityDegraded:
		return "degraded"
	case CriticalityCritical:
		return "critical"
	default:
		return "none"
	}
}

// MarshalText encodes the criticality by name.
func (c Criticality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (c *Criticality) UnmarshalText(text []byte) error {
	switch string(text) {
	case "degraded":
		*c = CriticalityDegraded
	case "critical":
		*c = CriticalityCritical
	default:
		*c = CriticalityNone
	}

	return nil
}

// HealthStatus derives the policy health from its circuit breaker and the
// shared rate limiter.
func (p *Policy[T]) HealthStatus() PolicyStatus {
	status := PolicyStatus{
		Name:    p.name,
		Healthy: true,
		State:   "healthy",
	}

	if p.breaker != nil {
		switch p.breaker.State() {
		case CircuitOpen:
			status.Healthy = false
			status.Criticality = CriticalityCritical
			status.State = "circuit_open"
		case CircuitHalfOpen:
			status.State = "circuit_half_open"
		case CircuitClosed:
		}
	}

	if p.limiter != nil && p.limiter.Saturated() && status.Healthy {
		status.Criticality = CriticalityDegraded
		status.State = "throttled"
	}

	return status
}
