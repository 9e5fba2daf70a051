package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type SpiderTag struct{}

var SpiderTagComponent = NewComponent[SpiderTag]()

type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()
