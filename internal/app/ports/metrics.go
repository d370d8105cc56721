package ports

type TurnMetrics interface {
	RecordTurn(result string)
	RecordFallback()
	RecordConflict()
	RecordFailure()
}
