package app

// Key binding constants used in the key handlers.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyJ         = "j"
	KeyK         = "k"
	KeyH         = "h"
	KeyL         = "l"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyEdit      = "e"
	KeyAdd       = "a"
	KeyRefresh   = "r"
	KeyPerms     = "p"
	KeySubmit    = "ctrl+s"
	KeyYes       = "y"
	KeyNo        = "n"
)
