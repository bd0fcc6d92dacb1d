package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/search"
)

type summary struct {
	Games     int
	Wins      [2]int
	Draws     int
	Captures  int
	Plies     int
	Stats     [2]search.Stats
	StartedAt time.Time
}

// Score is Black's points per game, a draw counting half.
func (s summary) Score() float64 {
	if s.Games == 0 {
		return 0.5
	}
	return (float64(s.Wins[board.PlayerBlack]) + float64(s.Draws)/2) / float64(s.Games)
}

// EloDiff turns Score into a rating difference of Black over White.
func (s summary) EloDiff() float64 {
	score := math.Min(math.Max(s.Score(), 0.001), 0.999)
	return -400 * math.Log10(1/score-1)
}

func (s summary) String() string {
	avgPlies := 0.0
	if s.Games > 0 {
		avgPlies = float64(s.Plies) / float64(s.Games)
	}
	return fmt.Sprintf("games=%d black=%d white=%d draws=%d capture_wins=%d avg_plies=%.1f score=%.3f elo=%+.0f",
		s.Games, s.Wins[board.PlayerBlack], s.Wins[board.PlayerWhite], s.Draws, s.Captures, avgPlies, s.Score(), s.EloDiff())
}

func (s *summary) add(res gameResult) {
	s.Games++
	s.Plies += res.Plies
	if res.Draw {
		s.Draws++
	} else {
		s.Wins[res.Winner]++
		if res.Reason == "capture" {
			s.Captures++
		}
	}
	for p := range s.Stats {
		addStats(&s.Stats[p], res.Stats[p])
	}
}

func collectResults(ctx context.Context, cfg arenaConfig, finished <-chan gameResult) (summary, error) {
	total := summary{StartedAt: time.Now()}
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case res, ok := <-finished:
			if !ok {
				log.Printf("[selfplay] %s elapsed=%s", total, time.Since(total.StartedAt).Round(time.Millisecond))
				for _, p := range []board.Player{board.PlayerBlack, board.PlayerWhite} {
					log.Printf("[selfplay] %s depth=%d %s", p, cfg.Depth[p], total.Stats[p])
				}
				return total, nil
			}
			total.add(res)
			outcome := "draw"
			if !res.Draw {
				outcome = res.Winner.String() + " wins"
			}
			log.Printf("[selfplay] game %d: %s by %s in %d plies | %s", res.Index, outcome, res.Reason, res.Plies, total)
			if cfg.PrintBoards {
				fmt.Print(res.Board)
			}
		}
	}
}
