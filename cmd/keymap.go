package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/waves/internal/app"
)

// windowAction maps a pressed glfw key to an app action.
func windowAction(key glfw.Key) app.Action {
	switch key {
	case glfw.KeyRight, glfw.KeyN:
		return app.ActionNextPalette
	case glfw.KeyLeft, glfw.KeyP:
		return app.ActionPreviousPalette
	case glfw.KeySpace:
		return app.ActionTogglePause
	case glfw.KeyS:
		return app.ActionSnapshot
	case glfw.KeyEscape, glfw.KeyQ:
		return app.ActionQuit
	default:
		return app.ActionNone
	}
}

// termAction maps a terminal key event to an app action.
func termAction(ev *tcell.EventKey) app.Action {
	switch ev.Key() {
	case tcell.KeyRight:
		return app.ActionNextPalette
	case tcell.KeyLeft:
		return app.ActionPreviousPalette
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return app.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'n':
			return app.ActionNextPalette
		case 'p':
			return app.ActionPreviousPalette
		case ' ':
			return app.ActionTogglePause
		case 's':
			return app.ActionSnapshot
		case 'q':
			return app.ActionQuit
		}
	}
	return app.ActionNone
}
