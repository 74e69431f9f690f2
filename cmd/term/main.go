package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aimlab/internal/app"
	"aimlab/internal/audio"
	"aimlab/internal/config"
	"aimlab/internal/events"
	"aimlab/internal/loop"
	"aimlab/internal/session"
	"aimlab/internal/settings"
	"aimlab/internal/surface/term"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err.Error())
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	database, initial := app.OpenDatabase(ctx, cfg)
	if database != nil {
		defer database.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// the screen is ours from here on
	log.SetOutput(logOutput())

	var sinks []events.Sink
	if cfg.Audio {
		spk := audio.NewSpeaker()
		if err := spk.Initialize(); err != nil {
			log.Printf("[Audio] %v (running silent)\n", err)
		} else {
			defer spk.Close()
			sinks = append(sinks, audio.NewSink(spk))
		}
	}

	cols, rows := screen.Size()
	surf := term.New(cols, rows-1)
	round := session.NewPlane(surf, surf, settings.NewStore(initial), session.Config{
		RoundDuration: cfg.RoundDuration,
		MaxFrameDelta: cfg.MaxFrameDeltaSeconds(),
		History:       app.NewHistory(database, cfg),
		DB:            database,
		Sinks:         sinks,
	})

	ctx, quit := context.WithCancel(ctx)
	defer quit()
	l := loop.New(loop.Config{})
	if err := l.Start(ctx); err != nil {
		return err
	}

	t := &terminal{screen: screen, surf: surf, round: round, quit: quit}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loop.Tick(ctx, l, cfg.FrameInterval(), t.frame)
	})
	eg.Go(func() error {
		defer quit()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			if _, ok := ev.(*tcell.EventInterrupt); ok {
				return nil
			}
			if err := l.Submit(ctx, func() error { return t.handle(ev) }); err != nil {
				return err
			}
		}
	})
	eg.Go(func() error {
		<-ctx.Done()
		return screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	err = eg.Wait()
	<-l.Done()
	round.Teardown()
	if errors.Is(err, context.Canceled) || errors.Is(err, loop.ErrStopped) {
		return nil
	}
	return err
}

func logOutput() io.Writer {
	path := os.Getenv("LOG_FILE")
	if path == "" {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
