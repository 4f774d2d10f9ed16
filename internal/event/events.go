package event

const (
	EventScoreSubmitted = "score.submitted"
	EventBoardReset     = "board.reset"
)
