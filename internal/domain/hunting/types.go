package hunting

type AnimalKindID string

type TrapKindID string

type ZoneID string

type AnimalKind struct {
	ID   AnimalKindID `json:"id"`
	Name string       `json:"name"`
	Cost int          `json:"cost"`
}

type TrapKind struct {
	ID          TrapKindID               `json:"id"`
	Name        string                   `json:"name"`
	Cost        int                      `json:"cost"`
	CatchChance map[AnimalKindID]float64 `json:"catch_chance"`
}

// ChanceFor returns the probability this trap kind catches the given animal
// kind on one evaluation. Kinds missing from the table never get caught.
func (t TrapKind) ChanceFor(kind AnimalKindID) float64 {
	if t.CatchChance == nil {
		return 0
	}
	return t.CatchChance[kind]
}

type AnimalInstance struct {
	Kind AnimalKindID
	Zone ZoneID
}

type TrapInstance struct {
	Kind TrapKindID
	Zone ZoneID
}

type ZoneSpec struct {
	ID   ZoneID `json:"id"`
	Name string `json:"name"`
}

type Process string

const (
	ProcessTax   Process = "tax"
	ProcessHunt  Process = "hunt"
	ProcessSpawn Process = "spawn"
)

type State string

const (
	StateRunning State = "running"
	StateOver    State = "over"
)
