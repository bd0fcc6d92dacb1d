package main

import (
	"sync"

	"github.com/TheKrainBow/gomoku/internal/geometry"
)

type GameController struct {
	mu      sync.Mutex
	game    Game
	configs *ConfigStore
	// advisor serves explicit AI requests outside of the game's own players.
	advisor *AIPlayer
}

func NewGameController(settings GameSettings, configs *ConfigStore) *GameController {
	return &GameController{
		game:    NewGame(settings, configs.Get()),
		configs: configs,
		advisor: NewAIPlayer("advisor"),
	}
}

func (gc *GameController) ApplyHumanMove(c geometry.Coordinates) (HistoryEntry, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ApplyHumanMove(c)
}

// PlayAIMove searches for the side to move without holding the lock and
// plays the result if the position did not change meanwhile.
func (gc *GameController) PlayAIMove() (HistoryEntry, error) {
	gc.mu.Lock()
	snapshot, player, config, err := gc.game.searchSnapshot()
	gc.mu.Unlock()
	if err != nil {
		return HistoryEntry{}, err
	}
	result := gc.advisor.ChooseMove("request", snapshot, player, config)
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.applyAIResult(result)
}

func (gc *GameController) Undo() (int, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Undo()
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if len(gc.game.history) == 0 {
		return HistoryEntry{}, false
	}
	return gc.game.history[len(gc.game.history)-1], true
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings, gc.configs.Get())
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings, gc.configs.Get())
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.UpdateSettings(settings)
}

func (gc *GameController) UpdateConfig(config Config) Config {
	config = gc.configs.Update(config)
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.UpdateConfig(config)
	return config
}

func (gc *GameController) Advisor() *AIPlayer {
	return gc.advisor
}

func (gc *GameController) Config() Config {
	return gc.configs.Get()
}
