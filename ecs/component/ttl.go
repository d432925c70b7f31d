package component

// TTL removes an entity after Frames ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
