package main

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
)

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

func (s GameStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

var (
	errGameNotRunning = errors.New("game not running")
	errNotHumanTurn   = errors.New("not human turn")
	errNothingToUndo  = errors.New("nothing to undo")
	errStalePosition  = errors.New("position changed during search")
)

type HistoryEntry struct {
	Move      board.Move
	ElapsedMs float64
	IsAi      bool
	Depth     int
	Score     int64
}

// GameState is a detached copy of a game, safe to read without the
// controller lock.
type GameState struct {
	Board           *board.Board
	Rules           board.Rules
	ToMove          board.Player
	Status          GameStatus
	WinReason       string
	WinningLine     []geometry.Coordinates
	History         []HistoryEntry
	LastMessage     string
	TurnStartedAtMs int64
}

type Game struct {
	settings    GameSettings
	config      Config
	rules       board.Rules
	board       *board.Board
	toMove      board.Player
	status      GameStatus
	winReason   string
	winningLine []geometry.Coordinates
	history     []HistoryEntry
	lastMessage string
	blackPlayer IPlayer
	whitePlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings, config Config) Game {
	g := Game{}
	g.Reset(settings, config)
	return g
}

// Reset clears the board. Rules are fixed from config until the next reset.
func (g *Game) Reset(settings GameSettings, config Config) {
	g.settings = settings
	g.config = config
	g.rules = config.Rules
	g.board = board.New()
	g.toMove = board.PlayerBlack
	g.status = StatusNotStarted
	g.winReason = ""
	g.winningLine = nil
	g.history = nil
	g.lastMessage = ""
	g.createPlayers()
	g.turnStart = time.Now()
	log.Printf("[game] reset: Black (%s) vs White (%s), rules %s", settings.BlackType, settings.WhiteType, g.rules)
}

func (g *Game) Start() {
	if g.status == StatusNotStarted {
		g.status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return GameState{
		Board:           g.board.Clone(),
		Rules:           g.rules,
		ToMove:          g.toMove,
		Status:          g.status,
		WinReason:       g.winReason,
		WinningLine:     append([]geometry.Coordinates(nil), g.winningLine...),
		History:         append([]HistoryEntry(nil), g.history...),
		LastMessage:     g.lastMessage,
		TurnStartedAtMs: g.TurnStartedAtMs(),
	}
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// UpdateConfig swaps the AI settings in place. Rules wait for the next reset.
func (g *Game) UpdateConfig(config Config) {
	g.config = config
	g.createPlayers()
}

func (g *Game) UpdateSettings(settings GameSettings) {
	g.settings = settings
	g.createPlayers()
}

func (g *Game) ApplyHumanMove(c geometry.Coordinates) (HistoryEntry, error) {
	if g.status != StatusRunning {
		return HistoryEntry{}, errGameNotRunning
	}
	if !g.CurrentPlayerIsHuman() {
		return HistoryEntry{}, errNotHumanTurn
	}
	return g.applyMove(c, HistoryEntry{})
}

func (g *Game) applyMove(c geometry.Coordinates, meta HistoryEntry) (HistoryEntry, error) {
	if g.status != StatusRunning {
		return HistoryEntry{}, errGameNotRunning
	}
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	applied, err := g.board.SetMove(g.rules, board.Move{Player: g.toMove, Coordinates: c})
	if err != nil {
		g.lastMessage = "Illegal move: " + err.Error()
		return HistoryEntry{}, err
	}
	g.lastMessage = ""
	entry := meta
	entry.Move = applied
	entry.ElapsedMs = elapsedMs
	g.history = append(g.history, entry)
	log.Printf("[game] %s plays %s captured=%d total_pairs=%d elapsed=%.0fms ai=%t",
		applied.Player, applied.Coordinates, len(applied.Captured), g.board.Captures(applied.Player), elapsedMs, entry.IsAi)
	g.updateStatus(applied.Player)
	return entry, nil
}

// updateStatus checks both sides: a move can leave the opponent's five
// uncapturable as well as complete the mover's.
func (g *Game) updateStatus(mover board.Player) {
	g.winReason = ""
	g.winningLine = nil
	for _, p := range []board.Player{mover, mover.Opponent()} {
		if g.board.IsWinning(g.rules, p) {
			g.setWinner(p)
			return
		}
	}
	g.toMove = mover.Opponent()
	g.turnStart = time.Now()
	if len(g.board.LegalMoves(g.rules, g.toMove)) == 0 {
		g.status = StatusDraw
		log.Printf("[game] draw: %s has no legal move", g.toMove)
	}
}

func (g *Game) setWinner(p board.Player) {
	if p == board.PlayerBlack {
		g.status = StatusBlackWon
	} else {
		g.status = StatusWhiteWon
	}
	if g.board.Captures(p) >= board.CapturesToWin {
		g.winReason = "capture"
	} else {
		g.winReason = "alignment"
		g.winningLine, _ = g.board.FiveInARow(p)
	}
	log.Printf("[game] %s wins by %s after %d moves", p, g.winReason, len(g.history))
}

// Undo takes back the last move. Against an AI it also takes back the AI's
// reply so the human is to move again.
func (g *Game) Undo() (int, error) {
	if len(g.history) == 0 {
		return 0, errNothingToUndo
	}
	undone := 0
	for len(g.history) > 0 {
		if _, err := g.board.UndoMove(); err != nil {
			return undone, errors.Wrap(err, "undo")
		}
		last := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]
		g.toMove = last.Move.Player
		undone++
		if g.CurrentPlayerIsHuman() || g.settings.BlackType == g.settings.WhiteType {
			break
		}
	}
	g.status = StatusRunning
	g.winReason = ""
	g.winningLine = nil
	g.lastMessage = ""
	g.turnStart = time.Now()
	return undone, nil
}

// Tick drives AI players: it collects a finished search or starts one.
// It reports whether a move was applied.
func (g *Game) Tick() bool {
	if g.status != StatusRunning {
		return false
	}
	ai, ok := g.currentPlayer().(*AIPlayer)
	if !ok {
		return false
	}
	if ai.HasMoveReady() {
		result := ai.TakeMove()
		_, err := g.applyAIResult(result)
		if err != nil && !errors.Is(err, errStalePosition) {
			log.Printf("[game] ai move rejected: %v", err)
		}
		return err == nil
	}
	if !ai.IsThinking() {
		config := g.config
		config.Rules = g.rules
		ai.StartThinking(g.board, g.toMove, config)
	}
	return false
}

// searchSnapshot returns what an out-of-lock search needs.
func (g *Game) searchSnapshot() (*board.Board, board.Player, Config, error) {
	if g.status != StatusRunning {
		return nil, g.toMove, g.config, errGameNotRunning
	}
	config := g.config
	config.Rules = g.rules
	return g.board.Clone(), g.toMove, config, nil
}

func (g *Game) applyAIResult(result aiResult) (HistoryEntry, error) {
	if result.Err != nil {
		return HistoryEntry{}, result.Err
	}
	if !result.matches(g.board) {
		return HistoryEntry{}, errStalePosition
	}
	if !result.Eval.Found {
		return HistoryEntry{}, errors.Wrap(errGameNotRunning, "no move found")
	}
	meta := HistoryEntry{IsAi: true, Depth: result.Depth, Score: result.Eval.Score}
	return g.applyMove(result.Eval.BestMove.Coordinates, meta)
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.toMove)
}

func (g *Game) playerForColor(color board.Player) IPlayer {
	if color == board.PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer("black")
	}
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer("white")
	}
}
