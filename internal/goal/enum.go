package goal

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDone    Status = "DONE"
	StatusSkipped Status = "SKIPPED"
)
