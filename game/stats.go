package game

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/stackfall/piece"
)

// Stats counts what happened during one session.
type Stats struct {
	Ticks  int
	Locked int
	Lines  int
	// Clears[n] counts the locks that removed n rows at once, n in 1..4.
	Clears [5]int

	spawned *intmap.Map[piece.Type, int]
}

func NewStats() *Stats {
	return &Stats{
		spawned: intmap.New[piece.Type, int](piece.Count),
	}
}

func (s *Stats) recordSpawn(t piece.Type) {
	n, _ := s.spawned.Get(t)
	s.spawned.Put(t, n+1)
}

func (s *Stats) recordClear(lines int) {
	s.Lines += lines
	if lines > 0 && lines < len(s.Clears) {
		s.Clears[lines]++
	}
}

// Spawned returns how many pieces of type t entered play.
func (s *Stats) Spawned(t piece.Type) int {
	n, _ := s.spawned.Get(t)
	return n
}

// SpawnCounts returns the spawn count of every type, indexed by piece.Type.
func (s *Stats) SpawnCounts() [piece.Count]int {
	var counts [piece.Count]int
	for _, t := range piece.Types() {
		counts[t] = s.Spawned(t)
	}
	return counts
}

// TotalSpawned is the number of pieces spawned so far.
func (s *Stats) TotalSpawned() int {
	total := 0
	for _, n := range s.SpawnCounts() {
		total += n
	}
	return total
}
