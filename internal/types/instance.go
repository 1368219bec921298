package types

// InstanceStatus is the per-instance view returned by the list endpoint.
// It is rebuilt from the provider on every request and never stored.
type InstanceStatus struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	State    string  `json:"state"`
	Override *string `json:"override"`
}

// StartRequest is the body of POST /api/instances/:id/start.
// Hours is a pointer so an absent field falls back to the default.
type StartRequest struct {
	Hours *int `json:"hours"`
}

type ListResponse struct {
	Instances []InstanceStatus `json:"instances"`
}

type ActionResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	InstanceID    string `json:"instance_id"`
	OverrideUntil string `json:"override_until,omitempty"`
}

// StateStopped is the simulated lifecycle state reported for placeholder
// entries and for the whole fleet when the provider is unreachable.
const StateStopped = "stopped"
