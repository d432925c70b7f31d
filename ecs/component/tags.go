package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type BarrierTag struct{}

var BarrierTagComponent = NewComponent[BarrierTag]()
