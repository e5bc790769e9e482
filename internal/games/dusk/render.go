package dusk

import (
	"fmt"
	"math"

	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/games/dusk/sim"
)

// World pixels per terminal cell. Cells are about twice as tall as wide.
const (
	cellW = 16.0
	cellH = 32.0
)

// hudRows is the number of rows reserved at the top of the screen.
const hudRows = 1

// Visual characters for rendering
const (
	GroundChar   = '▓'
	PlayerChar   = '█'
	PlayerHead   = '◆'
	SwordChar    = '─'
	EnemyChar    = '▲'
	EnemyDead    = '░'
	CoinChar     = '●'
	PotionChar   = '♥'
	FadedChar    = '▒'
	BackdropChar = '.'
)

// camera maps world pixels to screen cells.
type camera struct {
	x, y float64 // World position of the top-left visible pixel
}

// newCamera centers the view on the player, clamped to the world.
func newCamera(dst *core.Screen, snap sim.Snapshot) camera {
	viewW := float64(dst.Width()) * cellW
	viewH := float64(dst.Height()-hudRows) * cellH

	c := camera{
		x: snap.Player.Pos.X - viewW/2,
		y: snap.Player.Pos.Y - viewH/2,
	}
	c.x = core.ClampF(c.x, 0, math.Max(0, snap.World.Width-viewW))
	c.y = core.ClampF(c.y, 0, math.Max(0, snap.World.Height-viewH))
	return c
}

// cell converts a world point to a screen cell.
func (c camera) cell(p core.Vec) (int, int) {
	x := int(math.Floor((p.X - c.x) / cellW))
	y := int(math.Floor((p.Y-c.y)/cellH)) + hudRows
	return x, y
}

// rect converts a world box to the screen cells it covers. Always at least
// one cell.
func (c camera) rect(b core.Box) core.Rect {
	x0 := int(math.Floor((b.X - c.x) / cellW))
	y0 := int(math.Floor((b.Y-c.y)/cellH)) + hudRows
	x1 := int(math.Ceil((b.Right() - c.x) / cellW))
	y1 := int(math.Ceil((b.Bottom()-c.y)/cellH)) + hudRows
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	snap := g.session.Snapshot()
	cam := newCamera(dst, snap)

	g.drawBackdrop(dst, cam)
	for _, p := range snap.World.Platforms {
		dst.DrawRectColored(cam.rect(p), GroundChar, core.ColorBrown)
	}
	for _, c := range snap.Coins {
		x, y := cam.cell(c.Pos)
		dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
	}
	for _, it := range snap.Items {
		x, y := cam.cell(it.Pos)
		dst.SetColored(x, y, PotionChar, core.ColorBrightMagenta)
	}
	for _, e := range snap.Enemies {
		drawEnemy(dst, cam, e)
	}
	drawPlayer(dst, cam, snap.Player)

	g.drawHUD(dst, snap)

	switch snap.State {
	case sim.StateMenu:
		drawCenteredMessage(dst, g.Title(), "Press Enter or Space to begin")
	case sim.StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case sim.StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Gold: %d  Level: %d  |  Press R to restart", snap.Gold, snap.Player.Stats.Level))
	}
}

// drawBackdrop scatters sparse stars that scroll slower than the world.
func (g *Game) drawBackdrop(dst *core.Screen, cam camera) {
	offset := int(cam.x/cellW) / 3
	for y := hudRows; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if ((x+offset)*7+y*13)%41 == 0 {
				dst.SetColored(x, y, BackdropChar, core.ColorGray)
			}
		}
	}
}

func drawEnemy(dst *core.Screen, cam camera, e sim.EnemySnapshot) {
	r := cam.rect(e.Bounds)
	ch, color := EnemyChar, core.ColorRed
	switch {
	case e.Dead && e.Alpha < 0.5:
		ch, color = EnemyDead, core.ColorGray
	case e.Dead:
		ch, color = FadedChar, core.ColorGray
	case e.Hit:
		color = core.ColorBrightWhite
	}
	dst.DrawRectColored(r, ch, color)
}

func drawPlayer(dst *core.Screen, cam camera, p sim.PlayerSnapshot) {
	color := core.ColorBrightCyan
	switch p.Tint {
	case sim.TintHurt:
		color = core.ColorBrightRed
	case sim.TintHeal:
		color = core.ColorBrightGreen
	case sim.TintLevelUp:
		color = core.ColorBrightYellow
	}

	body := PlayerChar
	if p.Faded {
		body = FadedChar
	}

	r := cam.rect(p.Bounds)
	dst.DrawRectColored(r, body, color)

	// Head on the side the player faces
	headX := r.X
	if p.Facing > 0 {
		headX = r.Right() - 1
	}
	dst.SetColored(headX, r.Y, PlayerHead, color)

	if p.Anim == sim.AnimAttack {
		y := r.Y + r.H/2
		if p.Facing > 0 {
			dst.DrawHLine(r.Right(), y, 3, SwordChar)
		} else {
			dst.DrawHLine(r.X-3, y, 3, SwordChar)
		}
	}
}

// drawHUD renders stats on the top row.
func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	st := snap.Player.Stats
	potions := 0
	for _, it := range snap.Inventory {
		if it.ID == sim.HealthPotionID {
			potions = it.Quantity
		}
	}

	left := fmt.Sprintf(" HP %d/%d  Lv %d  XP %d/%d  Gold %d  Potions %d ",
		st.Health, st.MaxHealth, st.Level, st.Experience, st.ExperienceToNextLevel, snap.Gold, potions)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	if g.message != "" && snap.State == sim.StatePlaying {
		msg := " " + g.message + " "
		dst.DrawTextColored(dst.Width()-len([]rune(msg)), 0, msg, core.ColorBrightYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	// Calculate box dimensions
	boxW := max(titleLen, subLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
