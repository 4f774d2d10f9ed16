package leaderboard

import "scoreboard/internal/event"

type Broadcaster interface {
	BroadcastJSON(v any)
}

// RegisterConsumers forwards every board change to live clients.
func RegisterConsumers(bus *event.Bus, ws Broadcaster) {
	forward := func(payload any) {
		ws.BroadcastJSON(payload)
	}

	bus.Subscribe(event.EventScoreSubmitted, forward)
	bus.Subscribe(event.EventBoardReset, forward)
}
