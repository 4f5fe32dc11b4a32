package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/scores"
)

const (
	boardX    = 1
	boardY    = 1
	cellWidth = 2
	hudGap    = 3
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	alertStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

var helpLines = []string{
	"←/→ h/l  move",
	"↑ k      rotate",
	"↓ j      soft drop",
	"space    hard drop",
	"+/-      difficulty",
	"p        pause",
	"r        restart",
	"b        leaderboard",
	"q        quit",
}

// cellStyle colors a board cell by its color id.
func cellStyle(id int) tcell.Style {
	c := game.ColorOf(id)
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawGame renders the board, the HUD and any status overlay.
// nextLevelText is the score for the next level, or "max" at the top.
func nextLevelText(snap game.Snapshot, p *message.Printer) string {
	if snap.NextLevelAt == 0 {
		return "max"
	}
	return p.Sprintf("%d", snap.NextLevelAt)
}

func drawGame(s tcell.Screen, snap game.Snapshot, p *message.Printer) {
	s.Clear()

	w := snap.Width * cellWidth
	for y := -1; y <= snap.Height; y++ {
		s.SetContent(boardX-1, boardY+y, '│', nil, frameStyle)
		s.SetContent(boardX+w, boardY+y, '│', nil, frameStyle)
	}
	for x := -1; x <= w; x++ {
		s.SetContent(boardX+x, boardY-1, '─', nil, frameStyle)
		s.SetContent(boardX+x, boardY+snap.Height, '─', nil, frameStyle)
	}

	for y, row := range snap.Grid() {
		for x, id := range row {
			r := ' '
			if id == 0 && x%2 == 1 {
				r = '·'
			}
			style := cellStyle(id)
			if id == 0 {
				style = style.Foreground(tcell.ColorDimGray)
			}
			for i := range cellWidth {
				s.SetContent(boardX+x*cellWidth+i, boardY+y, r, nil, style)
			}
		}
	}

	hudX := boardX + w + hudGap
	lines := []struct{ label, value string }{
		{"Score", p.Sprintf("%d", snap.Score)},
		{"High", p.Sprintf("%d", snap.HighScore)},
		{"Level", snap.LevelName},
		{"Next level at", nextLevelText(snap, p)},
		{"Lines", p.Sprintf("%d", snap.Lines)},
	}
	for i, l := range lines {
		drawText(s, hudX, boardY+i*2, l.label, labelStyle)
		drawText(s, hudX, boardY+i*2+1, l.value, textStyle)
	}
	for i, h := range helpLines {
		drawText(s, hudX, boardY+len(lines)*2+1+i, h, labelStyle)
	}

	switch {
	case snap.Over:
		drawBanner(s, snap, "GAME OVER", p.Sprintf("score %d  high %d", snap.Score, snap.HighScore), "press r to restart")
	case snap.Paused:
		drawBanner(s, snap, "PAUSED", "press p to resume")
	}
}

// drawBanner centres a block of lines over the board.
func drawBanner(s tcell.Screen, snap game.Snapshot, lines ...string) {
	w := snap.Width * cellWidth
	top := boardY + snap.Height/2 - len(lines)/2
	for i, line := range lines {
		n := len([]rune(line))
		x := boardX + max((w-n)/2, 0)
		drawText(s, x, top+i, line, alertStyle)
	}
}

// drawLeaderboard renders the records of one difficulty filter.
func drawLeaderboard(s tcell.Screen, filter string, records []scores.Record, tag language.Tag) {
	s.Clear()

	title := fmt.Sprintf("Leaderboard: %s", filter)
	drawText(s, 1, 0, title, textStyle.Bold(true))
	drawText(s, 1, 1, strings.Repeat("─", len([]rune(title))), frameStyle)

	if len(records) == 0 {
		drawText(s, 1, 3, "no games recorded yet", labelStyle)
	} else {
		var buf bytes.Buffer
		if err := scores.WriteTable(&buf, records, tag); err != nil {
			drawText(s, 1, 3, err.Error(), alertStyle)
		}
		for i, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			drawText(s, 1, 3+i, line, textStyle)
		}
	}

	_, h := s.Size()
	drawText(s, 1, h-1, "tab next filter   esc/b back", labelStyle)
}
