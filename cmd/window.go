package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/waves/internal/app"
	"github.com/irfansharif/waves/internal/config"
	"github.com/irfansharif/waves/internal/render"
)

// pausedPollInterval bounds how long a paused window waits for input before
// presenting again.
const pausedPollInterval = 0.1 // seconds

func runWindow(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing GLFW: %w", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Waves", nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	runtimeLogger.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	fw, fh := window.GetFramebufferSize()
	surface, err := render.NewSurface(fw, fh, cfg.Background)
	if err != nil {
		return err
	}

	w, h, scale := windowViewport(window)
	application, err := app.NewApp(cfg, surface, app.NewView(w, h, scale))
	if err != nil {
		surface.Cleanup()
		return err
	}
	application.Driver.OnClose(surface.Cleanup)
	defer application.Close()
	NewEventHandlers(window, application)

	runtimeLogger.Printf("Seed %d, %d palettes, reduced motion %v",
		application.Seed, len(application.Driver.Palettes()), application.Driver.ReducedMotion())

	frames := application.Frames()
	flushErrLogged := false
	for !window.ShouldClose() && !application.ShouldQuit() {
		frameStart := time.Now()

		if _, err := application.Frame(); err != nil && !flushErrLogged {
			log.Printf("Presenting frame failed: %v", err)
			flushErrLogged = true
		}
		window.SwapBuffers()
		if application.Driver.Paused() {
			glfw.WaitEventsTimeout(pausedPollInterval)
		} else {
			glfw.PollEvents()
		}

		now := time.Now()
		if !frames.Record(now, now.Sub(frameStart)) {
			continue
		}

		renderStats := surface.Stats()
		window.SetTitle(app.Title(app.TitleStats{
			FPS:          frames.FPS,
			AvgFrameTime: frames.AvgFrameTime,
			Palette:      application.Driver.PaletteIndex(),
			Palettes:     len(application.Driver.Palettes()),
			Paused:       application.Driver.Paused(),
			Triangles:    renderStats.Triangles,
			GPUBytes:     renderStats.Memory.TotalGPUBytes,
		}))

		driverStats := application.Driver.Stats()
		runtimeLogger.Println("=== Performance statistics ===")
		runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", frames.FPS, frames.AvgFrameTime)
		runtimeLogger.Printf("Geometry:       %d triangles, %d draw calls/frame", renderStats.Triangles, renderStats.Memory.DrawCallsPerFrame)
		runtimeLogger.Printf("Render time:    %.2f µs (last draw), %.2f µs (last flush)", driverStats.LastDrawTimeUs, renderStats.LastFlushTimeUs)
		runtimeLogger.Printf("Driver:         %d frames, %d draws (%d skipped), %d palette changes", driverStats.Frames, driverStats.Draws, driverStats.SkippedDraws, driverStats.PaletteChanges)
		runtimeLogger.Println("==============================")

		surface.PrintStats()
	}
	return nil
}
