package component

import "github.com/d5/tengo/v2"

// PlayerScript drives the player with a compiled tengo program. The script
// reads tick, x, y and sets vx, vy.
type PlayerScript struct {
	Name     string
	Source   []byte
	Compiled *tengo.Compiled
	Speed    float64
	Failed   bool
}

var PlayerScriptComponent = NewComponent[PlayerScript]()
