package utils

const (
	BackendPostgres   = "postgres"
	BackendClickHouse = "clickhouse"
)

func IsValidCountsBackend(backend string) bool {
	switch backend {
	case BackendPostgres, BackendClickHouse:
		return true
	default:
		return false
	}
}
