package tui

import (
	"math"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/game"
	"github.com/vovakirdan/aetheria/internal/interaction"
	"github.com/vovakirdan/aetheria/internal/session"
)

// Map projection: terminal cells are about twice as tall as wide, so one
// world unit spans two columns and one row.
const (
	cellsPerUnitX = 2.0
	cellsPerUnitZ = 1.0
	gridSpacing   = 4.0
)

// Map glyphs
const (
	glyphFloor      = '·'
	glyphWall       = '░'
	glyphArtifact   = '◇'
	glyphInRange    = '◆'
	glyphOpen       = '▣'
	glyphDiscovered = '✦'
)

var avatarGlyphs = map[core.AvatarKind]rune{
	core.AvatarMage:     'M',
	core.AvatarScout:    'S',
	core.AvatarGuardian: 'G',
}

// camera maps world ground coordinates to cells of a viewport centered on
// the local avatar.
type camera struct {
	view   core.Rect
	center core.Vec3
}

func (c camera) toCell(p core.Vec3) (int, int) {
	x := c.view.X + c.view.W/2 + int(math.Round((p.X-c.center.X)*cellsPerUnitX))
	y := c.view.Y + c.view.H/2 + int(math.Round((p.Z-c.center.Z)*cellsPerUnitZ))
	return x, y
}

func (c camera) toWorld(x, y int) (float64, float64) {
	wx := c.center.X + float64(x-c.view.X-c.view.W/2)/cellsPerUnitX
	wz := c.center.Z + float64(y-c.view.Y-c.view.H/2)/cellsPerUnitZ
	return wx, wz
}

// drawMap renders the ground, artifacts, peers and the local avatar into
// view.
func drawMap(s *core.Screen, view core.Rect, w *game.World, st game.State) {
	if view.W <= 0 || view.H <= 0 {
		return
	}
	cam := camera{view: view, center: st.Position}
	bounds := w.Config().Movement.Bounds

	drawGround(s, cam, bounds)

	for _, a := range w.Catalog().All() {
		drawArtifact(s, cam, a, w.ArtifactState(a.ID), w.IsDiscovered(a.ID))
	}

	for _, p := range st.Peers {
		drawPeer(s, cam, p)
	}

	x, y := cam.toCell(st.Position)
	s.Set(x, y, facingGlyph(st.RotationY), st.Profile.Color)
}

func drawGround(s *core.Screen, cam camera, bounds float64) {
	view := cam.view
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			wx, wz := cam.toWorld(x, y)
			switch {
			case math.Abs(wx) >= bounds || math.Abs(wz) >= bounds:
				if math.Abs(wx) < bounds+1 && math.Abs(wz) < bounds+1 {
					s.Set(x, y, glyphWall, core.ColorDim)
				}
			case onGrid(wx, 0.25) && onGrid(wz, 0.5):
				s.Set(x, y, glyphFloor, core.ColorDim)
			}
		}
	}
}

func onGrid(v, tolerance float64) bool {
	return math.Abs(v-gridSpacing*math.Round(v/gridSpacing)) < tolerance
}

func drawArtifact(s *core.Screen, cam camera, a catalog.Artifact, state interaction.State, discovered bool) {
	x, y := cam.toCell(a.Position)
	if !cam.view.Contains(x, y) {
		return
	}

	glyph := glyphArtifact
	switch {
	case state == interaction.Open:
		glyph = glyphOpen
	case state == interaction.InRange:
		glyph = glyphInRange
	case discovered:
		glyph = glyphDiscovered
	}
	s.Set(x, y, glyph, a.Color)

	labelColor := core.ColorGray
	if state != interaction.OutOfRange {
		labelColor = a.Color
	}
	label := []rune(a.Title)
	lx := x - len(label)/2
	if y+1 < cam.view.Bottom() {
		for i, r := range label {
			if cam.view.Contains(lx+i, y+1) {
				s.Set(lx+i, y+1, r, labelColor)
			}
		}
	}
}

func drawPeer(s *core.Screen, cam camera, p session.Remote) {
	x, y := cam.toCell(p.Position)
	if !cam.view.Contains(x, y) {
		return
	}
	glyph, ok := avatarGlyphs[p.Avatar]
	if !ok {
		glyph = '?'
	}
	s.Set(x, y, glyph, p.Color)
}

// facingGlyph picks the arrow closest to the heading atan2(dx, dz). A zero
// heading faces +Z, which is down on screen.
func facingGlyph(rotY float64) rune {
	arrows := []rune{'▼', '►', '▲', '◄'}
	quarter := int(math.Round(core.WrapAngle(rotY)/(math.Pi/2))) % 4
	if quarter < 0 {
		quarter += 4
	}
	return arrows[quarter]
}
