package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 28
	ButtonHeight   = 40
	TabHeight      = 34
	SectionLabelH  = 20
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}    // Dark background
	tabActiveBg     = color.RGBA{76, 132, 96, 255}   // Green for active tab
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}    // Darker gray for inactive
	tabHoverBg      = color.RGBA{65, 70, 78, 255}    // Visible hover state
	buttonBg        = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonPressedBg = color.RGBA{40, 44, 50, 255}    // Button pressed (darker)
	buttonBorder    = color.RGBA{70, 75, 82, 255}    // Subtle button border
	accentColor     = color.RGBA{76, 175, 120, 255}  // Green accent
	accentHover     = color.RGBA{96, 195, 140, 255}  // Lighter green on hover
	accentPressed   = color.RGBA{56, 155, 100, 255}  // Darker green on press
	textPrimary     = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary   = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted       = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor    = color.RGBA{60, 65, 72, 255}    // Divider line
	moveRowAlt      = color.RGBA{44, 48, 54, 255}    // Alternating row
	statusThinking  = color.RGBA{100, 180, 255, 255} // Blue for thinking
	statusGameOver  = color.RGBA{255, 200, 80, 255}  // Yellow for game over
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

// Panel represents the side panel with controls and move history.
type Panel struct {
	game *Game

	newGameBtn *Button
	modeTabs   []*Button // [0] = vs Human, [1] = vs Computer
	diffTabs   []*Button // [0] = Easy, [1] = Medium, [2] = Hard
	colorTabs  []*Button // [0] = Play White, [1] = Play Black

	// Move history scroll
	scrollY    int
	maxScrollY int

	scale float64
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{
		game:  g,
		scale: 1.0,
	}

	p.createButtons()
	return p
}

// SetScale sets the HiDPI scale factor for drawing.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

// sc returns the scaled value for rendering.
func (p *Panel) sc(v int) float32 {
	return float32(float64(v) * p.scale)
}

// createButtons initializes all panel buttons.
func (p *Panel) createButtons() {
	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	// New Game button (full width, prominent)
	newGameY := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	// Mode section: label + tabs
	modeLabelY := newGameY + ButtonHeight + SectionSpacing - 8
	modeTabY := modeLabelY + SectionLabelH
	tabW := contentW / 2
	p.modeTabs = []*Button{
		{X: contentX, Y: modeTabY, W: tabW, H: TabHeight, Label: "vs Human",
			OnClick: func() {
				if p.game.GameMode() != ModeHumanVsHuman {
					p.game.ToggleModeAction()
				}
			}},
		{X: contentX + tabW, Y: modeTabY, W: tabW, H: TabHeight, Label: "vs Computer",
			OnClick: func() {
				if p.game.GameMode() != ModeHumanVsComputer {
					p.game.ToggleModeAction()
				}
			}},
	}

	// Difficulty section: label + tabs (only visible in vs Computer mode)
	diffLabelY := modeTabY + TabHeight + SectionSpacing
	diffTabY := diffLabelY + SectionLabelH
	diffTabW := contentW / 3
	p.diffTabs = []*Button{
		{X: contentX, Y: diffTabY, W: diffTabW, H: TabHeight - 2, Label: "Easy",
			OnClick: func() { p.game.SetDifficulty(DifficultyEasy) }},
		{X: contentX + diffTabW, Y: diffTabY, W: diffTabW, H: TabHeight - 2, Label: "Medium",
			OnClick: func() { p.game.SetDifficulty(DifficultyMedium) }},
		{X: contentX + diffTabW*2, Y: diffTabY, W: diffTabW, H: TabHeight - 2, Label: "Hard",
			OnClick: func() { p.game.SetDifficulty(DifficultyHard) }},
	}

	// Player color section: label + tabs (only visible in vs Computer mode)
	colorLabelY := diffTabY + TabHeight - 2 + SectionSpacing
	colorTabY := colorLabelY + SectionLabelH
	p.colorTabs = []*Button{
		{X: contentX, Y: colorTabY, W: tabW, H: TabHeight - 2, Label: "Play White",
			OnClick: func() { p.game.SetPlayerWhite(true) }},
		{X: contentX + tabW, Y: colorTabY, W: tabW, H: TabHeight - 2, Label: "Play Black",
			OnClick: func() { p.game.SetPlayerWhite(false) }},
	}
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	// Handle scroll wheel for move history
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		historyY := p.getHistoryStartY()
		// Check if mouse is in move history area
		if mx >= BoardSize && my >= historyY && my < ScreenHeight-70 {
			p.scrollY -= int(wheelY * 30) // 30px per scroll tick
			if p.scrollY < 0 {
				p.scrollY = 0
			}
			if p.scrollY > p.maxScrollY {
				p.scrollY = p.maxScrollY
			}
		}
	}

	// Check buttons for hover
	p.newGameBtn.hovered = p.isInside(mx, my, p.newGameBtn)
	for _, btn := range p.modeTabs {
		btn.hovered = p.isInside(mx, my, btn)
	}
	for _, btn := range p.diffTabs {
		btn.hovered = p.isInside(mx, my, btn)
	}
	for _, btn := range p.colorTabs {
		btn.hovered = p.isInside(mx, my, btn)
	}

	// Track pressed state (mouse down on button)
	if input.IsLeftPressed() {
		p.newGameBtn.pressed = p.newGameBtn.hovered
		for _, btn := range p.modeTabs {
			btn.pressed = btn.hovered
		}
		for _, btn := range p.diffTabs {
			btn.pressed = btn.hovered
		}
		for _, btn := range p.colorTabs {
			btn.pressed = btn.hovered
		}
	} else {
		p.newGameBtn.pressed = false
		for _, btn := range p.modeTabs {
			btn.pressed = false
		}
		for _, btn := range p.diffTabs {
			btn.pressed = false
		}
		for _, btn := range p.colorTabs {
			btn.pressed = false
		}
	}

	// Handle clicks
	if input.IsLeftJustPressed() {
		if p.newGameBtn.hovered {
			p.newGameBtn.OnClick()
			return true
		}
		for _, btn := range p.modeTabs {
			if btn.hovered {
				btn.OnClick()
				return true
			}
		}
		if p.game.GameMode() == ModeHumanVsComputer {
			for _, btn := range p.diffTabs {
				if btn.hovered {
					btn.OnClick()
					return true
				}
			}
			for _, btn := range p.colorTabs {
				if btn.hovered {
					btn.OnClick()
					return true
				}
			}
		}
	}

	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.newGameBtn.hovered {
		return true
	}
	for _, btn := range p.modeTabs {
		if btn.hovered {
			return true
		}
	}
	if p.game.GameMode() == ModeHumanVsComputer {
		for _, btn := range p.diffTabs {
			if btn.hovered {
				return true
			}
		}
		for _, btn := range p.colorTabs {
			if btn.hovered {
				return true
			}
		}
	}
	return false
}

func (p *Panel) isInside(mx, my int, btn *Button) bool {
	return mx >= btn.X && mx < btn.X+btn.W && my >= btn.Y && my < btn.Y+btn.H
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	// Draw panel background
	vector.DrawFilledRect(screen, p.sc(BoardSize), 0, p.sc(PanelWidth), p.sc(ScreenHeight), panelBg, false)

	// Draw New Game button
	p.drawPrimaryButton(screen, p.newGameBtn)

	// Draw mode section
	modeLabelY := p.modeTabs[0].Y - SectionLabelH
	p.drawSectionLabel(screen, "Game Mode", BoardSize+PanelPadding, modeLabelY)
	p.drawTabs(screen, p.modeTabs, p.activeModeTab())

	// Draw difficulty and color sections (only in vs Computer mode)
	if p.game.GameMode() == ModeHumanVsComputer {
		diffLabelY := p.diffTabs[0].Y - SectionLabelH
		p.drawSectionLabel(screen, "Difficulty", BoardSize+PanelPadding, diffLabelY)
		p.drawTabs(screen, p.diffTabs, int(p.game.Difficulty()))

		colorLabelY := p.colorTabs[0].Y - SectionLabelH
		p.drawSectionLabel(screen, "Play As", BoardSize+PanelPadding, colorLabelY)
		p.drawTabs(screen, p.colorTabs, p.activeColorTab())
	}

	// Draw move history section
	historyY := p.getHistoryStartY()
	p.drawSectionLabel(screen, "Moves", BoardSize+PanelPadding, historyY)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4)

	// Draw status bar at bottom
	p.drawStatusBar(screen)
}

func (p *Panel) activeModeTab() int {
	if p.game.GameMode() == ModeHumanVsComputer {
		return 1
	}
	return 0
}

func (p *Panel) activeColorTab() int {
	if p.game.PlayerIsWhite() {
		return 0
	}
	return 1
}

func (p *Panel) getHistoryStartY() int {
	if p.game.GameMode() == ModeHumanVsComputer {
		return p.colorTabs[0].Y + p.colorTabs[0].H + SectionSpacing - 4
	}
	return p.modeTabs[0].Y + p.modeTabs[0].H + SectionSpacing - 4
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}

	vector.DrawFilledRect(screen, p.sc(btn.X), p.sc(btn.Y), p.sc(btn.W), p.sc(btn.H), bgColor, false)

	// Draw border for depth
	borderC := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255} // Lighter border on hover
	}
	vector.StrokeRect(screen, p.sc(btn.X), p.sc(btn.Y), p.sc(btn.W), p.sc(btn.H), 1, borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawTabs(screen *ebiten.Image, tabs []*Button, active int) {
	for i, btn := range tabs {
		isActive := i == active

		bgColor := tabInactiveBg
		if isActive {
			bgColor = tabActiveBg
		} else if btn.pressed {
			bgColor = buttonPressedBg
		} else if btn.hovered {
			bgColor = tabHoverBg
		}

		vector.DrawFilledRect(screen, p.sc(btn.X), p.sc(btn.Y), p.sc(btn.W), p.sc(btn.H), bgColor, false)

		// Draw border - highlight on hover, green on active
		borderC := buttonBorder
		if isActive {
			borderC = tabActiveBg
		} else if btn.hovered {
			borderC = accentColor
		}
		vector.StrokeRect(screen, p.sc(btn.X), p.sc(btn.Y), p.sc(btn.W), p.sc(btn.H), 1, borderC, false)

		textColor := textSecondary
		if isActive {
			textColor = textPrimary
		}
		p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textColor)
	}
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	p.drawText(screen, label, x, y, textMuted)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.NotationHistory()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", BoardSize+PanelPadding, startY+5, textMuted)
		return
	}

	x := BoardSize + PanelPadding
	rowHeight := 22
	maxY := ScreenHeight - 70 // Leave room for status bar
	visibleHeight := maxY - startY

	// Calculate total content height and max scroll
	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = contentHeight - visibleHeight
	if p.maxScrollY < 0 {
		p.maxScrollY = 0
	}

	// Clamp scroll position
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}

	// Calculate starting row based on scroll
	startRow := p.scrollY / rowHeight
	startMoveIdx := startRow * 2

	// Y position adjusted for partial scroll
	y := startY - (p.scrollY % rowHeight)

	for i := startMoveIdx; i < len(moves); i += 2 {
		// Skip if above visible area
		if y < startY-rowHeight {
			y += rowHeight
			continue
		}
		// Stop if below visible area
		if y > maxY {
			break
		}

		// Alternating row background (only if visible)
		if y >= startY-rowHeight && (i/2)%2 == 1 {
			bgY := y - 2
			if bgY < startY {
				bgY = startY
			}
			vector.DrawFilledRect(screen, p.sc(BoardSize+PanelPadding-4), p.sc(bgY),
				p.sc(PanelWidth-PanelPadding*2+8), p.sc(rowHeight), moveRowAlt, false)
		}

		// Only draw text if within visible bounds
		if y >= startY {
			moveNum := (i / 2) + 1
			numStr := fmt.Sprintf("%d.", moveNum)
			p.drawText(screen, numStr, x, y, textMuted)
			p.drawText(screen, moves[i], x+34, y, textPrimary)
			if i+1 < len(moves) {
				p.drawText(screen, moves[i+1], x+130, y, textPrimary)
			}
		}

		y += rowHeight
	}

	// Show scroll indicator if there's more content
	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := float32(visibleHeight) * float32(visibleHeight) / float32(contentHeight)
		if indicatorH < 20 {
			indicatorH = 20
		}
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		indicatorX := float32(BoardSize + PanelWidth - 8)
		vector.DrawFilledRect(screen, indicatorX*float32(p.scale), indicatorY*float32(p.scale),
			4*float32(p.scale), indicatorH*float32(p.scale), textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - 70
	x := BoardSize + PanelPadding

	// Draw divider
	vector.DrawFilledRect(screen, p.sc(BoardSize+PanelPadding), p.sc(statusY-10),
		p.sc(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	// Draw player name
	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	p.drawText(screen, username, x, statusY, textPrimary)

	// Engine score badge, in units of one man
	if score, ok := p.game.EngineScore(); ok {
		p.drawText(screen, fmt.Sprintf("%+.2f", float64(score)/1000), x+130, statusY, textSecondary)
	}

	// Game status
	var statusText string
	var statusColor color.RGBA

	if p.game.GameOver() {
		statusText = p.game.GameResult()
		statusColor = statusGameOver
	} else if p.game.IsAIThinking() {
		statusText = "Computer thinking..."
		statusColor = statusThinking
	} else {
		if p.game.Position().WhiteToMove() {
			statusText = "White to move"
		} else {
			statusText = "Black to move"
		}
		statusColor = textPrimary
	}

	p.drawText(screen, statusText, x, statusY+22, statusColor)
}

// Text drawing helpers
func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.sc(x)), float64(p.sc(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	x := float64(p.sc(centerX)) - w/2
	y := float64(p.sc(centerY)) - h/2
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
