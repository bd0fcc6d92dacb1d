package main

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/search"
)

// aiResult is a finished search, tagged with the position it ran on.
type aiResult struct {
	Eval  search.Evaluation
	Stats search.Stats
	Depth int
	Err   error
	hash  uint64
	ply   int
}

func (r aiResult) matches(b *board.Board) bool {
	return r.hash == b.Hash() && r.ply == len(b.History())
}

type AIPlayer struct {
	name       string
	searchMu   sync.Mutex
	searcher   *search.Searcher
	rules      board.Rules
	opts       search.Options
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	readyMove  aiResult
}

func NewAIPlayer(name string) *AIPlayer {
	return &AIPlayer{name: name}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove searches b synchronously. b is not modified.
func (a *AIPlayer) ChooseMove(tag string, b *board.Board, player board.Player, config Config) aiResult {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()
	searcher := a.searcherFor(config)
	eval, err := searcher.Search(b, player)
	result := aiResult{
		Eval:  eval,
		Stats: searcher.Stats(),
		Depth: config.AiDepth,
		Err:   err,
		hash:  b.Hash(),
		ply:   len(b.History()),
	}
	if err != nil {
		log.Printf("[ai:%s] %s search failed: %v", tag, a.name, err)
	} else if config.AiLogSearchStats {
		logSearchStats(tag, a.name, result)
	}
	return result
}

// StartThinking searches a snapshot of b in the background. The result is
// picked up with TakeMove once HasMoveReady reports true.
func (a *AIPlayer) StartThinking(b *board.Board, player board.Player, config Config) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	snapshot := b.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		result := a.ChooseMove("think", snapshot, player, config)
		a.moveMutex.Lock()
		a.readyMove = result
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

// searcherFor reuses the searcher, and its table allocation, while the
// rules and options stay the same. Callers hold searchMu.
func (a *AIPlayer) searcherFor(config Config) *search.Searcher {
	opts := config.SearchOptions()
	if a.searcher == nil || a.opts != opts || a.rules != config.Rules {
		a.searcher = search.New(config.Rules, opts)
		a.opts = opts
		a.rules = config.Rules
	}
	return a.searcher
}

// TableEntries reports the transposition table left by the last search and
// its most probed entries.
func (a *AIPlayer) TableEntries(limit int) (count, capacity int, top []search.TTEntry) {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()
	if a.searcher == nil {
		return 0, 0, nil
	}
	tt := a.searcher.Table()
	return tt.Count(), tt.Capacity(), tt.TopEntriesByHits(limit)
}

func (a *AIPlayer) ClearTable() {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()
	if a.searcher != nil {
		a.searcher.Table().Clear()
	}
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() aiResult {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}

func logSearchStats(tag, name string, result aiResult) {
	move := "none"
	if result.Eval.Found {
		move = result.Eval.BestMove.Coordinates.String()
	}
	log.Printf("[ai:%s] %s depth=%d move=%s score=%d %s", tag, name, result.Depth, move, result.Eval.Score, result.Stats)
}
