package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/scores"
)

type view int

const (
	viewGame view = iota
	viewLeaderboard
)

// app is the terminal frontend. All of its fields are owned by the goroutine
// calling run; the loop's own goroutine only pokes the redraw channel.
type app struct {
	screen  tcell.Screen
	loop    *game.Loop
	keeper  *scores.Keeper
	log     logrus.FieldLogger
	tag     language.Tag
	printer *message.Printer

	view           view
	filter         int
	records        []scores.Record
	pausedForBoard bool

	redraw  chan struct{}
	runLoop func(context.Context) error
}

func newApp(screen tcell.Screen, loop *game.Loop, keeper *scores.Keeper, log logrus.FieldLogger, tag language.Tag) *app {
	a := &app{
		screen:  screen,
		loop:    loop,
		keeper:  keeper,
		log:     log,
		tag:     tag,
		printer: message.NewPrinter(tag),
		redraw:  make(chan struct{}, 1),
		runLoop: loop.Run,
	}
	loop.Subscribe(a.observe)
	return a
}

// observe runs on whichever goroutine produced ev and must not block.
func (a *app) observe(game.Event) {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

// run drives the loop and the input until the player quits or ctx ends.
func (a *app) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		a.runLoop(ctx)
	}()
	// Listeners run on the loop goroutine; nothing may fire once run returns.
	defer func() {
		cancel()
		<-loopDone
	}()

	input := make(chan tcell.Event, 16)
	go func() {
		defer close(input)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-input:
			if !ok || !a.handle(ev) {
				return nil
			}
		case <-a.redraw:
		}
		a.draw()
	}
}

// handle reacts to one terminal event and reports whether to keep running.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if a.view == viewLeaderboard {
			return a.handleLeaderboardKey(ev)
		}
		if isQuit(ev) {
			return false
		}
		cmd, ok := commandFor(ev)
		if !ok {
			return true
		}
		if a.loop.Apply(cmd) && cmd == game.Leaderboard {
			a.openLeaderboard()
		}
	}
	return true
}

func (a *app) handleLeaderboardKey(ev *tcell.EventKey) bool {
	filters := scores.Filters()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.closeLeaderboard()
	case tcell.KeyTab, tcell.KeyRight:
		a.filter = (a.filter + 1) % len(filters)
		a.loadRecords()
	case tcell.KeyBacktab, tcell.KeyLeft:
		a.filter = (a.filter + len(filters) - 1) % len(filters)
		a.loadRecords()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'b':
			a.closeLeaderboard()
		}
	}
	return true
}

// openLeaderboard pauses a running game while the table is shown.
func (a *app) openLeaderboard() {
	if !a.loop.Snapshot().Paused {
		a.pausedForBoard = a.loop.Apply(game.Pause)
	}
	a.view = viewLeaderboard
	a.loadRecords()
}

func (a *app) closeLeaderboard() {
	a.view = viewGame
	if a.pausedForBoard {
		a.loop.Apply(game.Pause)
		a.pausedForBoard = false
	}
}

func (a *app) loadRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a.records = a.keeper.Top(ctx, a.filterName())
	a.log.WithFields(logrus.Fields{"filter": a.filterName(), "records": len(a.records)}).Debug("leaderboard loaded")
}

func (a *app) filterName() string {
	return scores.Filters()[a.filter]
}

func (a *app) draw() {
	switch a.view {
	case viewLeaderboard:
		drawLeaderboard(a.screen, a.filterName(), a.records, a.tag)
	default:
		drawGame(a.screen, a.loop.Snapshot(), a.printer)
	}
	a.screen.Show()
}
