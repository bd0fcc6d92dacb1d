package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

var errInvalidPayload = errors.New("invalid payload")

type StatusResponse struct {
	Settings        GameSettingsDTO        `json:"settings"`
	Config          Config                 `json:"config"`
	Rules           board.Rules            `json:"rules"`
	NextPlayer      int                    `json:"next_player"`
	Winner          int                    `json:"winner"`
	BoardSize       int                    `json:"board_size"`
	Board           string                 `json:"board"`
	Status          string                 `json:"status"`
	History         []historyEntryDTO      `json:"history"`
	WinReason       string                 `json:"win_reason"`
	WinningLine     []geometry.Coordinates `json:"winning_line"`
	CapturedBlack   int                    `json:"captured_black"`
	CapturedWhite   int                    `json:"captured_white"`
	CaptureWinPairs int                    `json:"capture_win_pairs"`
	AiThinking      bool                   `json:"ai_thinking"`
	LastMessage     string                 `json:"last_message"`
	TurnStartedAtMs int64                  `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X                 int                    `json:"x"`
	Y                 int                    `json:"y"`
	Player            int                    `json:"player"`
	ElapsedMs         float64                `json:"elapsed_ms"`
	IsAi              bool                   `json:"is_ai"`
	CapturedCount     int                    `json:"captured_count"`
	CapturedPositions []geometry.Coordinates `json:"captured_positions"`
	Changes           []cellChange           `json:"changes"`
	Depth             int                    `json:"depth"`
	Score             int64                  `json:"score"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type cellChange struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

// boardQuery addresses either the running game (empty Board) or a position
// given in the text format.
type boardQuery struct {
	Board  string       `json:"board"`
	Player int          `json:"player"`
	Depth  int          `json:"depth"`
	Rules  *board.Rules `json:"rules"`
}

type bestMoveResponse struct {
	Found  bool                  `json:"found"`
	Move   *geometry.Coordinates `json:"move,omitempty"`
	Player int                   `json:"player"`
	Score  int64                 `json:"score"`
	Depth  int                   `json:"depth"`
	Stats  string                `json:"stats"`
}

type ttCacheStatusResponse struct {
	Count    int               `json:"count"`
	Capacity int               `json:"capacity"`
	Usage    float64           `json:"usage"`
	Full     bool              `json:"full"`
	Items    []ttCacheEntryDTO `json:"items"`
}

type ttCacheEntryDTO struct {
	Hash       string                `json:"hash"`
	Hits       uint32                `json:"hits"`
	Depth      int                   `json:"depth"`
	Side       int                   `json:"side"`
	Score      int64                 `json:"score"`
	Flag       string                `json:"flag"`
	BestMove   *geometry.Coordinates `json:"best_move,omitempty"`
	BlackScore int64                 `json:"black_score"`
	WhiteScore int64                 `json:"white_score"`
}

type legalMovesResponse struct {
	Player int                    `json:"player"`
	Moves  []geometry.Coordinates `json:"moves"`
}

type scoreResponse struct {
	Player       int           `json:"player"`
	Score        int64         `json:"score"`
	BlackScore   int64         `json:"black_score"`
	WhiteScore   int64         `json:"white_score"`
	BlackPattern pattern.Count `json:"black_patterns"`
	WhitePattern pattern.Count `json:"white_patterns"`
	BlackWinning bool          `json:"black_winning"`
	WhiteWinning bool          `json:"white_winning"`
}

func newRouter(controller *GameController, hub *Hub) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	publishMove := func() {
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.Publish("history", historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
		}
		hub.Publish("status", controllerStatus(controller))
	}

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, errInvalidPayload)
			return
		}
		controller.StartGame(settingsFromDTO(payload.Settings, DefaultGameSettings()))
		status := controllerStatus(controller)
		hub.Publish("reset", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		status := controllerStatus(controller)
		hub.Publish("reset", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   json.RawMessage  `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, errInvalidPayload)
			return
		}
		if len(payload.Config) > 0 {
			config := controller.Config()
			if err := json.Unmarshal(payload.Config, &config); err != nil {
				writeError(w, errInvalidPayload)
				return
			}
			controller.UpdateConfig(config)
		}
		if payload.Settings != nil {
			controller.UpdateSettings(settingsFromDTO(*payload.Settings, controller.Settings()))
		}
		hub.Publish("settings", settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   controller.Config(),
		})
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, errInvalidPayload)
			return
		}
		if _, err := controller.ApplyHumanMove(geometry.NewCoordinates(payload.X, payload.Y)); err != nil {
			writeError(w, err)
			return
		}
		publishMove()
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/ai-move", func(w http.ResponseWriter, r *http.Request) {
		if _, err := controller.PlayAIMove(); err != nil {
			writeError(w, err)
			return
		}
		publishMove()
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		if _, err := controller.Undo(); err != nil {
			writeError(w, err)
			return
		}
		status := controllerStatus(controller)
		hub.Publish("reset", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/best-move", func(w http.ResponseWriter, r *http.Request) {
		b, player, config, err := resolveQuery(r, controller)
		if err != nil {
			writeError(w, err)
			return
		}
		result := controller.Advisor().ChooseMove("query", b, player, config)
		if result.Err != nil {
			writeError(w, result.Err)
			return
		}
		resp := bestMoveResponse{
			Found:  result.Eval.Found,
			Player: playerToInt(player),
			Score:  result.Eval.Score,
			Depth:  result.Depth,
			Stats:  result.Stats.String(),
		}
		if result.Eval.Found {
			c := result.Eval.BestMove.Coordinates
			resp.Move = &c
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/api/legal-moves", func(w http.ResponseWriter, r *http.Request) {
		b, player, config, err := resolveQuery(r, controller)
		if err != nil {
			writeError(w, err)
			return
		}
		moves := b.LegalMoves(config.Rules, player)
		resp := legalMovesResponse{Player: playerToInt(player), Moves: make([]geometry.Coordinates, 0, len(moves))}
		for _, m := range moves {
			resp.Moves = append(resp.Moves, m.Coordinates)
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/api/score", func(w http.ResponseWriter, r *http.Request) {
		b, player, config, err := resolveQuery(r, controller)
		if err != nil {
			writeError(w, err)
			return
		}
		eval := heuristic.NewEvaluator(b, config.Rules, config.Heuristics)
		writeJSON(w, http.StatusOK, scoreResponse{
			Player:       playerToInt(player),
			Score:        eval.ScoreForSide(b, player),
			BlackScore:   eval.SideScore(b, board.PlayerBlack),
			WhiteScore:   eval.SideScore(b, board.PlayerWhite),
			BlackPattern: eval.Count(b, board.PlayerBlack),
			WhitePattern: eval.Count(b, board.PlayerWhite),
			BlackWinning: b.IsWinning(config.Rules, board.PlayerBlack),
			WhiteWinning: b.IsWinning(config.Rules, board.PlayerWhite),
		})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
		writeJSON(w, http.StatusOK, ttCacheStatus(controller.Advisor(), limit))
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		controller.Advisor().ClearTable()
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

// resolveQuery reads a boardQuery body. An empty body or board field means
// the running game, with its side to move and rules.
func resolveQuery(r *http.Request, controller *GameController) (*board.Board, board.Player, Config, error) {
	var query boardQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil && !errors.Is(err, io.EOF) {
		return nil, board.PlayerBlack, Config{}, errInvalidPayload
	}
	config := controller.Config()
	if query.Depth > 0 {
		config.AiDepth = min(query.Depth, maxAiDepth)
	}
	if query.Board == "" {
		state := controller.State()
		config.Rules = state.Rules
		if query.Rules != nil {
			config.Rules = *query.Rules
		}
		player := state.ToMove
		if query.Player != 0 {
			player = intToPlayer(query.Player)
		}
		return state.Board, player, config, nil
	}
	b, err := board.Parse(query.Board)
	if err != nil {
		return nil, board.PlayerBlack, Config{}, errors.Wrap(errInvalidPayload, err.Error())
	}
	if query.Rules != nil {
		config.Rules = *query.Rules
	}
	player := intToPlayer(query.Player)
	if query.Player == 0 && b.Rocks(board.PlayerBlack).Len() > b.Rocks(board.PlayerWhite).Len() {
		player = board.PlayerWhite
	}
	return b, player, config, nil
}

func ttCacheStatus(ai *AIPlayer, limit int) ttCacheStatusResponse {
	count, capacity, top := ai.TableEntries(limit)
	resp := ttCacheStatusResponse{Count: count, Capacity: capacity, Items: make([]ttCacheEntryDTO, 0, len(top))}
	if capacity > 0 {
		resp.Usage = float64(count) / float64(capacity)
		resp.Full = count >= capacity
	}
	for _, entry := range top {
		dto := ttCacheEntryDTO{
			Hash:       fmt.Sprintf("0x%016x", entry.Key),
			Hits:       entry.Hits,
			Depth:      entry.Depth,
			Side:       playerToInt(entry.Side),
			Score:      entry.Score,
			Flag:       entry.Flag.String(),
			BlackScore: entry.BlackScore,
			WhiteScore: entry.WhiteScore,
		}
		if entry.HasBest {
			c := entry.BestMove
			dto.BestMove = &c
		}
		resp.Items = append(resp.Items, dto)
	}
	return resp
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidPayload),
		errors.Is(err, board.ErrOutOfBounds),
		errors.Is(err, board.ErrOccupied),
		errors.Is(err, board.ErrIllegalMove):
		status = http.StatusBadRequest
	case errors.Is(err, errGameNotRunning),
		errors.Is(err, errNotHumanTurn),
		errors.Is(err, errNothingToUndo),
		errors.Is(err, errStalePosition):
		status = http.StatusConflict
	}
	body := map[string]string{"error": err.Error()}
	if reason := board.ReasonOf(err); reason != board.NoReason {
		body["reason"] = reason.String()
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          controller.Config(),
		Rules:           state.Rules,
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		BoardSize:       geometry.Size,
		Board:           state.Board.String(),
		Status:          state.Status.String(),
		History:         historyToDTO(state.History),
		WinReason:       state.WinReason,
		WinningLine:     state.WinningLine,
		CapturedBlack:   state.Board.Captures(board.PlayerBlack),
		CapturedWhite:   state.Board.Captures(board.PlayerWhite),
		CaptureWinPairs: board.CapturesToWin,
		AiThinking:      controller.AiThinking(),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: state.TurnStartedAtMs,
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	switch {
	case settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI:
		return GameSettingsDTO{Mode: "ai_vs_ai"}
	case settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman:
		return GameSettingsDTO{Mode: "human_vs_human", HumanPlayer: 1}
	case settings.BlackType == PlayerHuman:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 1}
	default:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 2}
	}
}

func playerToInt(player board.Player) int {
	if player == board.PlayerBlack {
		return 1
	}
	return 2
}

func intToPlayer(value int) board.Player {
	if value == 2 {
		return board.PlayerWhite
	}
	return board.PlayerBlack
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func historyToDTO(entries []HistoryEntry) []historyEntryDTO {
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	c := entry.Move.Coordinates
	changes := []cellChange{{X: c.X, Y: c.Y, Value: playerToInt(entry.Move.Player)}}
	for _, captured := range entry.Move.Captured {
		changes = append(changes, cellChange{X: captured.X, Y: captured.Y, Value: 0})
	}
	return historyEntryDTO{
		X:                 c.X,
		Y:                 c.Y,
		Player:            playerToInt(entry.Move.Player),
		ElapsedMs:         entry.ElapsedMs,
		IsAi:              entry.IsAi,
		CapturedCount:     len(entry.Move.Captured),
		CapturedPositions: append([]geometry.Coordinates(nil), entry.Move.Captured...),
		Changes:           changes,
		Depth:             entry.Depth,
		Score:             entry.Score,
	}
}
