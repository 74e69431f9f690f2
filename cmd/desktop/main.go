package main

import (
	"context"
	"log"

	"aimlab/internal/app"
	"aimlab/internal/audio"
	"aimlab/internal/config"
	"aimlab/internal/events"
	"aimlab/internal/session"
	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/surface/ebiten"
	"aimlab/internal/surface/paint"
	"aimlab/internal/targets"
	"aimlab/internal/vecmath"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, initial := app.OpenDatabase(ctx, cfg)
	if database != nil {
		defer database.Close()
	}

	roundCfg := session.Config{
		RoundDuration: cfg.RoundDuration,
		MaxFrameDelta: cfg.MaxFrameDeltaSeconds(),
		History:       app.NewHistory(database, cfg),
		DB:            database,
	}
	if cfg.Audio {
		spk := audio.NewSpeaker()
		if err := spk.Initialize(); err != nil {
			log.Printf("[Audio] %v (running silent)\n", err)
		} else {
			defer spk.Close()
			roundCfg.Sinks = []events.Sink{audio.NewSink(spk)}
		}
	}

	store := settings.NewStore(initial)
	var game *ebiten.Game
	switch cfg.Variant {
	case config.VariantVolume:
		game = volumeGame(store, roundCfg)
	default:
		game = planeGame(store, roundCfg)
	}

	if err := ebiten.Run(game, "Aim Lab", windowWidth, windowHeight); err != nil {
		log.Fatal(err)
	}
}

// planeGame plays in window pixels; the arena follows the window.
func planeGame(store *settings.Store, cfg session.Config) *ebiten.Game {
	scene := surface.NewScene(vecmath.Rect(windowWidth, windowHeight))
	round := session.NewPlane(scene, scene, store, cfg)
	return &ebiten.Game{
		Round: round,
		Paint: func(p paint.Painter, _, _ int) { paint.Plane(p, scene) },
		Resize: func(w, h int) {
			scene.SetArena(vecmath.Rect(float64(w), float64(h)))
		},
	}
}

// volumeGame plays in the fixed world box seen through the default camera,
// with the crosshair drawn flat on top.
func volumeGame(store *settings.Store, cfg session.Config) *ebiten.Game {
	cam := vecmath.DefaultCamera()
	world := surface.NewScene(targets.VolumeArena())
	overlay := surface.NewScene(vecmath.Rect(windowWidth, windowHeight))
	round := session.NewVolume(world, overlay, cam, store, cfg)
	return &ebiten.Game{
		Round: round,
		Paint: func(p paint.Painter, w, h int) {
			paint.Volume(p, world, paint.Viewport{Camera: cam, Width: float64(w), Height: float64(h)})
			paint.Plane(p, overlay)
		},
		Resize: func(w, h int) {
			overlay.SetArena(vecmath.Rect(float64(w), float64(h)))
		},
	}
}
