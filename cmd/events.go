package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/ncruces/zenity"

	"github.com/irfansharif/waves/internal/app"
)

// EventHandlers manages the window's input callbacks.
type EventHandlers struct {
	application *app.App
	window      *glfw.Window
}

// NewEventHandlers registers the window callbacks. They are removed again
// when the driver closes.
func NewEventHandlers(window *glfw.Window, application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application, window: window}
	eh.SetupCallbacks()
	application.Driver.OnClose(eh.RemoveCallbacks)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks() {
	eh.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			eh.handleAction(windowAction(key))
		}
	})
	eh.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			eh.handleAction(app.ActionNextPalette)
		}
	})
	eh.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		eh.application.PointerMoved(xpos, ypos) // window coordinates are logical pixels
	})
	eh.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			eh.application.PointerLeft()
		}
	})
	eh.window.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		eh.handleResize()
	})
	eh.window.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		eh.handleResize()
	})
}

// RemoveCallbacks unregisters every callback SetupCallbacks installed.
func (eh *EventHandlers) RemoveCallbacks() {
	eh.window.SetKeyCallback(nil)
	eh.window.SetMouseButtonCallback(nil)
	eh.window.SetCursorPosCallback(nil)
	eh.window.SetCursorEnterCallback(nil)
	eh.window.SetFramebufferSizeCallback(nil)
	eh.window.SetContentScaleCallback(nil)
}

func (eh *EventHandlers) handleAction(action app.Action) {
	switch action {
	case app.ActionNone:
	case app.ActionSnapshot:
		if err := eh.saveSnapshot(); err != nil {
			log.Printf("Snapshot failed: %v", err)
		}
	case app.ActionQuit:
		eh.application.Do(action)
		eh.window.SetShouldClose(true)
	default:
		eh.application.Do(action)
	}
}

// handleResize resizes the canvas to the window's current size and scale.
func (eh *EventHandlers) handleResize() {
	w, h, scale := windowViewport(eh.window)
	if err := eh.application.Resize(w, h, scale); err != nil {
		log.Printf("Resize to %dx%d@%.2f failed: %v", w, h, scale, err)
	}
}

// saveSnapshot asks for a destination and writes the current frame there as
// a PNG. Cancelling the dialog is not an error.
func (eh *EventHandlers) saveSnapshot() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename(fmt.Sprintf("waves-%d.png", eh.application.Seed)),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return writeSnapshot(eh.application, filename)
}

func writeSnapshot(application *app.App, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := application.Snapshot(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	runtimeLogger.Printf("Saved snapshot to %s", filename)
	return nil
}

// windowViewport returns the window's logical size and the framebuffer's
// pixel scale relative to it.
func windowViewport(window *glfw.Window) (w, h int, scale float64) {
	w, h = window.GetSize()
	fw, _ := window.GetFramebufferSize()
	if w > 0 && fw > 0 {
		return w, h, float64(fw) / float64(w)
	}
	sx, _ := window.GetContentScale()
	return w, h, float64(sx)
}
