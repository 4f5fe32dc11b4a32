package main

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/stackfall/board"
	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/scores"
)

const (
	cellSize     = 28
	margin       = 20
	hudWidth     = 220
	lineHeight   = 16
	ScreenWidth  = margin*3 + board.Width*cellSize + hudWidth
	ScreenHeight = margin*2 + board.Height*cellSize
)

var (
	backgroundColor = color.RGBA{0x18, 0x18, 0x20, 0xff}
	gridColor       = color.RGBA{0x28, 0x28, 0x34, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xc0}
)

// gui implements ebiten.Game on top of a game.Loop. Descent runs on the
// loop's own goroutine; Update only forwards input.
type gui struct {
	loop    *game.Loop
	keeper  *scores.Keeper
	log     logrus.FieldLogger
	tag     language.Tag
	printer *message.Printer

	showBoard      bool
	filter         int
	table          string
	pausedForBoard bool
}

func newGUI(loop *game.Loop, keeper *scores.Keeper, log logrus.FieldLogger, tag language.Tag) *gui {
	return &gui{
		loop:    loop,
		keeper:  keeper,
		log:     log,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

func (g *gui) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if g.showBoard {
			g.closeLeaderboard()
			return nil
		}
		return ebiten.Termination
	}

	if g.showBoard {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyTab):
			g.filter = (g.filter + 1) % len(scores.Filters())
			g.loadTable()
		case inpututil.IsKeyJustPressed(ebiten.KeyB):
			g.closeLeaderboard()
		}
		return nil
	}

	for _, b := range bindings {
		if !b.fires(inpututil.KeyPressDuration(b.key)) {
			continue
		}
		if g.loop.Apply(b.command) && b.command == game.Leaderboard {
			g.openLeaderboard()
			return nil
		}
	}
	return nil
}

func (g *gui) openLeaderboard() {
	if !g.loop.Snapshot().Paused {
		g.pausedForBoard = g.loop.Apply(game.Pause)
	}
	g.showBoard = true
	g.loadTable()
}

func (g *gui) closeLeaderboard() {
	g.showBoard = false
	if g.pausedForBoard {
		g.loop.Apply(game.Pause)
		g.pausedForBoard = false
	}
}

func (g *gui) loadTable() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := scores.Filters()[g.filter]
	records := g.keeper.Top(ctx, filter)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "LEADERBOARD: %s\n\n", filter)
	if len(records) == 0 {
		buf.WriteString("no games recorded yet\n")
	} else if err := scores.WriteTable(&buf, records, g.tag); err != nil {
		g.log.WithError(err).Warn("render leaderboard")
	}
	buf.WriteString("\nTAB next filter   B/ESC back")
	g.table = buf.String()
}

func (g *gui) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.loop.Snapshot()

	boardW := float32(snap.Width * cellSize)
	boardH := float32(snap.Height * cellSize)
	vector.DrawFilledRect(screen, margin, margin, boardW, boardH, gridColor, false)
	for y, row := range snap.Grid() {
		for x, id := range row {
			if id == 0 {
				continue
			}
			px, py := cellOrigin(x, y)
			vector.DrawFilledRect(screen, px+1, py+1, cellSize-2, cellSize-2, game.ColorOf(id), false)
		}
	}
	vector.StrokeRect(screen, margin, margin, boardW, boardH, 1, color.White, false)

	hudX := margin*2 + snap.Width*cellSize
	next := "MAX"
	if snap.NextLevelAt > 0 {
		next = g.printer.Sprintf("%d", snap.NextLevelAt)
	}
	hud := g.printer.Sprintf("SCORE\n%d\n\nHIGH\n%d\n\nLEVEL\n%s\nNEXT AT %s\n\nLINES\n%d\n\n",
		snap.Score, snap.HighScore, snap.LevelName, next, snap.Lines)
	hud += "ARROWS move/rotate\nX rotate\nSPACE hard drop\n+/- difficulty\nP pause  R restart\nB leaderboard\nQ quit"
	ebitenutil.DebugPrintAt(screen, hud, hudX, margin)

	switch {
	case g.showBoard:
		vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, overlayColor, false)
		ebitenutil.DebugPrintAt(screen, g.table, margin, margin)
	case snap.Over:
		g.banner(screen, snap, g.printer.Sprintf("GAME OVER\n\nscore %d\nhigh %d\n\nR to restart", snap.Score, snap.HighScore))
	case snap.Paused:
		g.banner(screen, snap, "PAUSED\n\nP to resume")
	}
}

func (g *gui) banner(screen *ebiten.Image, snap game.Snapshot, text string) {
	w := float32(snap.Width * cellSize)
	vector.DrawFilledRect(screen, margin, margin+float32(snap.Height*cellSize)/3, w, 6*lineHeight, overlayColor, false)
	ebitenutil.DebugPrintAt(screen, text, margin+lineHeight, margin+snap.Height*cellSize/3+lineHeight/2)
}

func (g *gui) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// cellOrigin is the top-left pixel of board cell (x, y).
func cellOrigin(x, y int) (float32, float32) {
	return float32(margin + x*cellSize), float32(margin + y*cellSize)
}
