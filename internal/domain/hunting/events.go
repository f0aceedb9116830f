package hunting

type EventType string

const (
	EventBalanceChanged       EventType = "balance_changed"
	EventTrapCountChanged     EventType = "trap_count_changed"
	EventZoneTrapCountChanged EventType = "zone_trap_count_changed"
	EventAnimalCountChanged   EventType = "animal_count_changed"
	EventHunted               EventType = "hunted"
	EventExtinction           EventType = "extinction"
	EventOverpopulation       EventType = "overpopulation"
	EventSessionOver          EventType = "session_over"
)

// Event is one entry of the notification stream. Only the fields relevant to
// Type are set.
type Event struct {
	Type    EventType    `json:"type"`
	Zone    ZoneID       `json:"zone,omitempty"`
	Animal  AnimalKindID `json:"animal,omitempty"`
	Trap    TrapKindID   `json:"trap,omitempty"`
	Value   int          `json:"value"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
}

type Observer interface {
	Notify(evt Event)
}

type ObserverFunc func(evt Event)

func (f ObserverFunc) Notify(evt Event) { f(evt) }

// Recorder buffers events in emission order. Useful as a per-command sink.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Notify(evt Event) {
	r.Events = append(r.Events, evt)
}

// Drain returns the buffered events and resets the buffer.
func (r *Recorder) Drain() []Event {
	out := r.Events
	r.Events = nil
	return out
}

type emitFunc func(evt Event)

func (e emitFunc) emit(evt Event) {
	if e != nil {
		e(evt)
	}
}
