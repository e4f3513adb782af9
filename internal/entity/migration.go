package entity

type Migration struct {
	Base

	Version int
}
