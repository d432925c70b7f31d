package component

type Player struct {
	Speed  float64
	Inside bool
	Hits   int
}

var PlayerComponent = NewComponent[Player]()
