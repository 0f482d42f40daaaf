package corpus

// Dataset is a minimal demo DataObject standing in for a real
// SQL-or-materialized data source: it reports representations in a
// caller-chosen preference order and carries a payload string that the
// registered operations below mutate, so dispatch/retry behavior is
// directly observable.
type Dataset struct {
	Reps    []string
	Payload string
}

// NewDataset wraps payload, preferring reps in the given order.
func NewDataset(payload string, reps ...string) *Dataset {
	return &Dataset{Reps: reps, Payload: payload}
}

// Representations implements kernel.DataObject.
func (d *Dataset) Representations() []string {
	return d.Reps
}
