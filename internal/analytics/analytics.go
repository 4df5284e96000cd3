package analytics

// Source tags where an analytics result was computed.
const (
	SourceRemote   = "remote"
	SourceDatabase = "database"
)

// Summary is the locally computed organization-wide view: counts by
// status plus the approval rate in whole percent.
type Summary struct {
	TotalWorkflows    int64 `json:"totalWorkflows"`
	PendingWorkflows  int64 `json:"pendingWorkflows"`
	ApprovedWorkflows int64 `json:"approvedWorkflows"`
	RejectedWorkflows int64 `json:"rejectedWorkflows"`
	ApprovalRate      int64 `json:"approvalRate"`
}

// Result wraps either the remote summary passed through unmodified or the
// database-computed Summary, tagged with its provenance.
type Result struct {
	Summary interface{} `json:"summary"`
	Source  string      `json:"source"`

	// degraded marks a remote payload that arrived but carried the ML
	// service's own fallback marker.
	degraded bool
}
