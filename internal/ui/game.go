package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pkoopman/draughtsplay/internal/board"
	"github.com/pkoopman/draughtsplay/internal/engine"
	"github.com/pkoopman/draughtsplay/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640 // Match board height to eliminate unused space
	BoardSize    = 640
	SquareSize   = BoardSize / 10
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by the input handler.
var UIScale float64 = 1.0

// GameMode represents the current game mode.
type GameMode int

const (
	ModeHumanVsHuman GameMode = iota
	ModeHumanVsComputer
)

// Difficulty represents AI difficulty levels.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Moves each side can make without advancing a man or capturing
// before the game is drawn.
const quietMoveDrawLimit = 50

// Game implements ebiten.Game interface.
type Game struct {
	// Core game state
	position        *board.Position
	moveHistory     []board.Move
	notationHistory []string
	quietPlies      int // Plies since the last capture or man move

	// UI state
	selectedSquare int
	legalMoves     []board.Move
	dragging       bool
	dragPiece      board.Piece
	dragSquare     int
	lastMove       board.Move

	// Game settings
	mode        GameMode
	difficulty  Difficulty
	username    string
	playerColor board.Color // Which color the human plays (default: White)

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	// AI Engine
	engine      *engine.Engine
	aiThinking  bool
	aiMove      chan board.Move
	lastAIScore int
	hasAIScore  bool

	// Game state
	gameOver   bool
	gameResult string
	gameStart  time.Time

	// HiDPI scaling
	scale float64
}

// NewGame creates a new draughts game.
func NewGame() *Game {
	g := &Game{
		position:    board.NewPosition(),
		mode:        ModeHumanVsComputer,
		difficulty:  DifficultyMedium,
		username:    "Player",
		playerColor: board.White, // Human plays White by default
		renderer:    NewRenderer(BoardSize, SquareSize),
		input:       NewInputHandler(),
		engine:      engine.NewEngine(engine.DifficultySettings[engine.Medium].Depth),
		aiMove:      make(chan board.Move, 1),
		gameStart:   time.Now(),
	}

	// Initialize storage
	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	// Load preferences
	g.loadPreferences()

	g.panel = NewPanel(g)

	// If player chose Black, the computer opens
	if g.mode == ModeHumanVsComputer && g.playerColor == board.Black {
		g.startAIThinking()
	}

	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}

	// Apply preferences
	g.username = g.prefs.Username
	g.difficulty = Difficulty(g.prefs.Difficulty)
	g.mode = GameMode(g.prefs.GameMode)

	if g.prefs.PlayerColor == storage.ColorBlack {
		g.playerColor = board.Black
		g.renderer.SetFlipped(true)
	} else {
		g.playerColor = board.White
		g.renderer.SetFlipped(false)
	}

	if isFirst, err := g.storage.IsFirstLaunch(); err == nil && isFirst {
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}

	g.prefs.Username = g.username
	g.prefs.Difficulty = storage.Difficulty(g.difficulty)
	g.prefs.GameMode = storage.GameMode(g.mode)

	if g.playerColor == board.Black {
		g.prefs.PlayerColor = storage.ColorBlack
	} else {
		g.prefs.PlayerColor = storage.ColorWhite
	}

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()

	// Handle panel interactions
	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil // Panel handled the input
	}

	// Handle board interactions
	g.handleBoardInput()

	// Check for AI move
	g.checkAIMove()

	// Update cursor based on hover state
	g.updateCursor()

	return nil
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	// Set HiDPI scale factor for all rendering components
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	// Clear background
	screen.Fill(g.renderer.Theme().Background)

	// Draw board
	g.renderer.DrawBoard(screen)

	// Draw highlights (last move, selection, legal moves)
	g.renderer.DrawHighlights(screen, g.selectedSquare, g.legalMoves, g.lastMove)

	// Draw pieces
	g.renderer.DrawPieces(screen, g.position, g.dragging, g.dragSquare)

	// Draw dragged piece
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	// Draw panel
	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Get and store device scale factor (2.0 on Retina, 1.0 on standard displays)
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0 // Ensure minimum scale of 1.0
	}

	// Update global scale for input handling
	UIScale = g.scale

	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput processes mouse interactions with the board.
func (g *Game) handleBoardInput() {
	if g.gameOver {
		return
	}

	// Don't allow moves while AI is thinking
	if g.aiThinking {
		return
	}

	// Only allow moves for human player in human vs computer mode
	if g.mode == ModeHumanVsComputer && g.position.SideToMove() != g.playerColor {
		return
	}

	mx, my := g.input.MousePosition()

	// Check if mouse is on the board
	if mx >= BoardSize || my >= BoardSize {
		return
	}

	// Handle mouse press
	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == 0 {
			return
		}

		piece := g.position.PieceAt(sq)

		// If clicking on our own piece, select it
		if piece != board.Empty && piece.Color() == g.position.SideToMove() {
			g.selectSquare(sq)
			g.startDrag(sq)
			return
		}

		// If we have a selection and clicking on a legal move target, make the move
		if g.selectedSquare != 0 {
			move := g.findMove(g.selectedSquare, sq)
			if !move.IsNoMove() {
				g.makeMove(move)
				return
			}
		}

		// Clear selection
		g.clearSelection()
	}

	// Handle dragging
	if g.dragging && g.input.IsLeftJustReleased() {
		g.handleDragRelease(mx, my)
	}
}

// selectSquare selects a square and collects legal moves from it.
func (g *Game) selectSquare(sq int) {
	g.selectedSquare = sq
	g.legalMoves = g.legalMovesFrom(sq)
}

// clearSelection clears the current selection.
func (g *Game) clearSelection() {
	g.selectedSquare = 0
	g.legalMoves = nil
	g.dragging = false
	g.dragPiece = board.Empty
	g.dragSquare = 0
}

// startDrag begins dragging a piece.
func (g *Game) startDrag(sq int) {
	g.dragging = true
	g.dragPiece = g.position.PieceAt(sq)
	g.dragSquare = sq
}

// handleDragRelease handles releasing a dragged piece.
func (g *Game) handleDragRelease(mx, my int) {
	targetSq := g.renderer.ScreenToSquare(mx, my)

	if targetSq != 0 {
		move := g.findMove(g.dragSquare, targetSq)
		if !move.IsNoMove() {
			g.makeMove(move)
			return
		}
	}

	// Invalid drop - clear selection
	g.clearSelection()
}

// legalMovesFrom returns all legal moves starting on the given square.
// Capture is mandatory, so on a forced capture quiet moves never appear.
func (g *Game) legalMovesFrom(sq int) []board.Move {
	var filtered []board.Move
	for _, move := range g.position.LegalMoves() {
		if move.From == sq {
			filtered = append(filtered, move)
		}
	}
	return filtered
}

// findMove finds a legal move from src to dst among the current selection.
// When several capture sequences share the same endpoints the first one
// is taken.
func (g *Game) findMove(src, dst int) board.Move {
	for _, move := range g.legalMoves {
		if move.From == src && move.To == dst {
			return move
		}
	}
	return board.NoMove
}

// makeMove applies a move to the game.
func (g *Game) makeMove(m board.Move) {
	g.notationHistory = append(g.notationHistory, m.String())

	movedMan := g.position.PieceAt(m.From).IsMan()
	g.position.Apply(m)

	g.moveHistory = append(g.moveHistory, m)
	g.lastMove = m

	if m.IsCapture() || movedMan {
		g.quietPlies = 0
	} else {
		g.quietPlies++
	}

	g.clearSelection()

	// Check for game end
	g.checkGameEnd()

	// Start AI thinking if it's computer's turn
	if !g.gameOver && g.mode == ModeHumanVsComputer && g.position.SideToMove() != g.playerColor {
		g.startAIThinking()
	}
}

// checkGameEnd checks if the game is over. The side that cannot move loses.
func (g *Game) checkGameEnd() {
	if g.position.IsTerminal() {
		g.gameOver = true
		if g.position.SideToMove() == board.White {
			g.gameResult = "Black wins!"
		} else {
			g.gameResult = "White wins!"
		}
	} else if g.quietPlies >= quietMoveDrawLimit*2 {
		g.gameOver = true
		g.gameResult = "Draw by repetition rule"
	}

	if g.gameOver {
		g.recordFinishedGame()
	}
}

// recordFinishedGame updates stats and archives the game.
func (g *Game) recordFinishedGame() {
	if g.storage == nil {
		return
	}

	// Win/loss stats only make sense against the computer
	if g.mode == ModeHumanVsComputer {
		draw := g.gameResult == "Draw by repetition rule"
		// The loser is the side to move in the final position
		won := !draw && g.position.SideToMove() != g.playerColor

		result := storage.GameResult{
			Won:        won,
			Draw:       draw,
			Mode:       storage.GameMode(g.mode),
			Difficulty: storage.Difficulty(g.difficulty),
		}
		if err := g.storage.RecordGame(result); err != nil {
			log.Printf("Warning: Failed to record game: %v", err)
		}
	}

	rec := &storage.GameRecord{
		Moves:      g.notationHistory,
		Result:     g.gameResult,
		Mode:       storage.GameMode(g.mode),
		Difficulty: storage.Difficulty(g.difficulty),
		Duration:   time.Since(g.gameStart),
	}
	if err := g.storage.SaveGame(rec); err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
	}
}

// startAIThinking starts the engine search in a goroutine.
func (g *Game) startAIThinking() {
	if g.position.SideToMove() == g.playerColor {
		log.Printf("ERROR: startAIThinking called on the player's turn")
		return
	}

	g.aiThinking = true

	settings := engine.DifficultySettings[g.engineDifficulty()]

	// Copy position for the search
	pos := g.position.Copy()

	timer := time.AfterFunc(settings.MoveTime, g.engine.Stop)

	go func() {
		move := g.engine.SelectMoveDepth(pos, settings.Depth)
		timer.Stop()
		g.aiMove <- move // Always send, even if NoMove (game over)
	}()
}

// checkAIMove checks if the engine has produced a move.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}

	select {
	case move := <-g.aiMove:
		g.aiThinking = false
		g.lastAIScore = g.engine.LastScore()
		g.hasAIScore = true
		if move.IsNoMove() {
			// Engine has no move - the game is over
			g.checkGameEnd()
			return
		}
		g.makeMove(move)
	default:
		// Still thinking
	}
}

// NewGameAction resets the game to the starting position.
func (g *Game) NewGameAction() {
	// Abort any running search first
	if g.aiThinking {
		g.engine.Stop()
		<-g.aiMove
		g.aiThinking = false
	}

	g.position = board.NewPosition()
	g.moveHistory = nil
	g.notationHistory = nil
	g.quietPlies = 0
	g.lastMove = board.NoMove
	g.clearSelection()
	g.gameOver = false
	g.gameResult = ""
	g.gameStart = time.Now()
	g.hasAIScore = false

	// If player chose Black, the computer (White) moves first
	if g.mode == ModeHumanVsComputer && g.playerColor == board.Black {
		g.startAIThinking()
	}
}

// ToggleModeAction toggles between Human vs Human and Human vs Computer.
func (g *Game) ToggleModeAction() {
	if g.mode == ModeHumanVsHuman {
		g.mode = ModeHumanVsComputer
	} else {
		g.mode = ModeHumanVsHuman
	}
	g.savePreferences()
}

// SetPlayerWhite sets whether the human plays White. The board is
// flipped so the player's pieces are at the bottom, and a new game
// is started.
func (g *Game) SetPlayerWhite(white bool) {
	color := board.White
	if !white {
		color = board.Black
	}
	if color == g.playerColor {
		return
	}
	g.playerColor = color
	g.renderer.SetFlipped(color == board.Black)
	g.savePreferences()
	g.NewGameAction()
}

// PlayerIsWhite returns true when the human plays White.
func (g *Game) PlayerIsWhite() bool {
	return g.playerColor == board.White
}

// SetDifficulty sets the AI difficulty.
func (g *Game) SetDifficulty(d Difficulty) {
	g.difficulty = d
	g.savePreferences()
}

// engineDifficulty maps the UI difficulty to the engine's.
func (g *Game) engineDifficulty() engine.Difficulty {
	switch g.difficulty {
	case DifficultyEasy:
		return engine.Easy
	case DifficultyHard:
		return engine.Hard
	default:
		return engine.Medium
	}
}

// Position returns the current position.
func (g *Game) Position() *board.Position {
	return g.position
}

// MoveHistory returns the move history.
func (g *Game) MoveHistory() []board.Move {
	return g.moveHistory
}

// NotationHistory returns the move history in numeric notation.
func (g *Game) NotationHistory() []string {
	return g.notationHistory
}

// GameMode returns the current game mode.
func (g *Game) GameMode() GameMode {
	return g.mode
}

// Difficulty returns the current AI difficulty.
func (g *Game) Difficulty() Difficulty {
	return g.difficulty
}

// GameOver returns true if the game is over.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// GameResult returns the game result string.
func (g *Game) GameResult() string {
	return g.gameResult
}

// IsAIThinking returns true if the engine is currently searching.
func (g *Game) IsAIThinking() bool {
	return g.aiThinking
}

// EngineScore returns the score of the last completed search, in
// thousandths of a man from White's point of view, and whether a
// search has completed this game.
func (g *Game) EngineScore() (int, bool) {
	return g.lastAIScore, g.hasAIScore
}

// Username returns the current username.
func (g *Game) Username() string {
	return g.username
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.storage != nil {
		g.storage.Close()
	}
}
