package common

const (
	ComponentClient       = "mercury-client"
	ComponentGraphQL      = "graphql"
	ComponentWriteChannel = "write-channel"
	ComponentAPI          = "api"
	ComponentLedger       = "ledger"
	ComponentMetrics      = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentClient:       {},
	ComponentGraphQL:      {},
	ComponentWriteChannel: {},
	ComponentAPI:          {},
	ComponentLedger:       {},
	ComponentMetrics:      {},
}
