package game

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/ui"
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawField()
	g.drawUI()

	rl.EndDrawing()
	g.perf.RecordFrame()
}

// drawField stretches the frame texture over the field area.
func (g *Game) drawField() {
	if !g.textureReady {
		return
	}
	w, h := g.fieldSize()
	src := rl.Rectangle{Width: float32(g.texture.Width), Height: float32(g.texture.Height)}
	dst := rl.Rectangle{Width: w, Height: h}
	rl.DrawTexturePro(g.texture, src, dst, rl.Vector2{}, 0, rl.White)
}

func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Steps:     g.engine.Steps(),
		Ticks:     g.engine.Ticks(),
		FPS:       rl.GetFPS(),
		Paused:    g.engine.Paused(),
		Recording: g.video != nil,
		Zoom:      float64(g.camera.Zoom),
		Stats:     g.lastStats,
		HaveStats: g.haveStats,
	})
	g.panel.Draw(g.engine)
}

// upload copies frame into the display texture, creating it on first use.
func (g *Game) upload(frame *image.RGBA) {
	if !g.textureReady {
		b := frame.Bounds()
		img := rl.GenImageColor(b.Dx(), b.Dy(), rl.Black)
		g.texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(g.texture, rl.FilterBilinear)
		g.textureReady = true
	}
	g.pixels = copyPixels(g.pixels, frame)
	rl.UpdateTexture(g.texture, g.pixels)
}

// copyPixels unpacks img row by row into dst, growing it if needed.
func copyPixels(dst []color.RGBA, img *image.RGBA) []color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if cap(dst) < w*h {
		dst = make([]color.RGBA, w*h)
	}
	dst = dst[:w*h]
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		row := img.Pix[off : off+4*w]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			p := row[4*x : 4*x+4 : 4*x+4]
			out[x] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	return dst
}
