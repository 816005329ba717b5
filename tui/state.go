package tui

type state int

const (
	chaptersState state = iota
	addressState
	errorState
)
