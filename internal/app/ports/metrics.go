package ports

import "trapzone/internal/domain/hunting"

type GameMetrics interface {
	RecordCommand(command string, err error)
	RecordEvents(events []hunting.Event)
}
