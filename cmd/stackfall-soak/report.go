package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/stackfall/game"
	"github.com/plus3/stackfall/piece"
	"github.com/plus3/stackfall/progression"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Seed     uint64
	Inputs   int
	MaxTicks int

	// Results
	Played         int
	Abandoned      int
	TotalTicks     int64
	TotalTime      time.Duration
	TickTime       Stats
	BestScore      int
	TotalScore     int
	TotalLines     int
	LevelReached   [progression.MaxLevel + 1]int
	Spawned        [piece.Count]int
	Clears         [5]int
	Pipeline       *game.PipelineStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// add folds one finished game into the totals.
func (r *Report) add(snap game.Snapshot) {
	r.Played++
	r.TotalScore += snap.Score
	r.TotalLines += snap.Lines
	r.BestScore = max(r.BestScore, snap.Score)
	r.LevelReached[snap.Level]++
	for t, n := range snap.Spawned {
		r.Spawned[t] += n
	}
}

type spawnRow struct {
	Name  string
	Count int
	Share float64
}

// SpawnRows lists the spawn distribution in piece declaration order.
func (r *Report) SpawnRows() []spawnRow {
	total := 0
	for _, n := range r.Spawned {
		total += n
	}
	rows := make([]spawnRow, 0, piece.Count)
	for _, t := range piece.Types() {
		row := spawnRow{Name: t.String(), Count: r.Spawned[t]}
		if total > 0 {
			row.Share = 100 * float64(row.Count) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Report) AvgScore() int {
	if r.Played == 0 {
		return 0
	}
	return r.TotalScore / r.Played
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Soak Report

## Configuration
- **Run Limit:** {{.Duration}}
- **Games Requested:** {{.Games}}
- **Seed:** {{.Seed}}
- **Inputs Per Tick:** 0-{{.Inputs}}
- **Tick Limit Per Game:** {{.MaxTicks}}

## Games
- **Played:** {{.Played}} ({{.Abandoned}} abandoned)
- **Best Score:** {{.BestScore}}
- **Average Score:** {{.AvgScore}}
- **Lines Cleared:** {{.TotalLines}}
- **Clears:** single {{index .Clears 1}}, double {{index .Clears 2}}, triple {{index .Clears 3}}, tetris {{index .Clears 4}}
- **Final Level:**{{range $level, $n := .LevelReached}} {{level $level}}={{$n}}{{end}}

## Spawn Distribution
{{range .SpawnRows}}- {{.Name}}: {{.Count}} ({{printf "%.1f" .Share}}%)
{{end}}
## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Run Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{with .Pipeline}}
## Tick Pipeline ({{.Ticks}} ticks, {{.Skipped}} skipped, {{.Locked}} locks, {{.Cleared}} rows cleared)
{{range .Steps}}- {{.Name}}: acted {{.Acted}}/{{.Runs}}, {{.Events}} events, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"level": progression.LevelName,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
