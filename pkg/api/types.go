package api

// v0 contains public types for early SDK usage.

// Rule maps a divisor to the marker emitted for its multiples. Rules apply
// in declared order, so an integer matching several rules gets the markers
// concatenated in that order.
type Rule struct {
	Divisor int    `json:"divisor" yaml:"divisor"`
	Marker  string `json:"marker" yaml:"marker"`
}

// RunSpec describes a single labeling run.
type RunSpec struct {
	Bound int    `json:"bound" yaml:"bound"`
	Rules []Rule `json:"rules" yaml:"rules"`
	Quiet bool   `json:"quiet" yaml:"quiet"`
}

// RunSummary is a stored run as listed by the history store.
type RunSummary struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Bound     int    `json:"bound"`
	Banner    string `json:"banner"`
	Rules     string `json:"rules"`
}
