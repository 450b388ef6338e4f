package badge

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/reflekt/repute/internal/domain/reputation"
)

// Badge dimensions in pixels.
const (
	width  = 1000
	height = 1000
)

// scheme holds the color palette used for one tier.
type scheme struct {
	bg      color.RGBA
	primary color.RGBA
	accent  color.RGBA
}

// tierSchemes carries the original palette per tier; novice doubles as
// the fallback for unknown names.
var tierSchemes = map[reputation.Tier]scheme{
	reputation.TierLegendary: {bg: hexRGBA("#1a0033"), primary: hexRGBA("#FFD700"), accent: hexRGBA("#9D4EDD")},
	reputation.TierEpic:      {bg: hexRGBA("#1a1a2e"), primary: hexRGBA("#A020F0"), accent: hexRGBA("#FF2E63")},
	reputation.TierRare:      {bg: hexRGBA("#0f1419"), primary: hexRGBA("#00B4D8"), accent: hexRGBA("#48CAE4")},
	reputation.TierUncommon:  {bg: hexRGBA("#1a1a1a"), primary: hexRGBA("#06FFA5"), accent: hexRGBA("#20A4F3")},
	reputation.TierCommon:    {bg: hexRGBA("#161616"), primary: hexRGBA("#4ECDC4"), accent: hexRGBA("#247BA0")},
	reputation.TierNovice:    {bg: hexRGBA("#0d1117"), primary: hexRGBA("#58A6FF"), accent: hexRGBA("#1F6FEB")},
}

// Render produces a deterministic badge image for a result: tier-colored
// background, corner accents and a score bar filled in proportion to the
// total. Pixel-accurate artwork is explicitly out of scope; the output
// varies only with tier and score.
func Render(result reputation.Result) image.Image {
	s, ok := tierSchemes[result.Tier]
	if !ok {
		s = tierSchemes[reputation.TierNovice]
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{s.bg}, image.Point{}, draw.Src)

	// Corner accents.
	fill(img, image.Rect(0, 0, 100, 5), s.accent)
	fill(img, image.Rect(width-100, 0, width, 5), s.accent)
	fill(img, image.Rect(0, height-5, 100, height), s.accent)
	fill(img, image.Rect(width-100, height-5, width, height), s.accent)

	// Score bar: outline plus proportional fill.
	const (
		barWidth  = 600
		barHeight = 30
		barY      = 380
	)
	barX := (width - barWidth) / 2
	fill(img, image.Rect(barX, barY, barX+barWidth, barY+barHeight), hexRGBA("#222222"))
	fillWidth := int(result.TotalScore / 100 * barWidth)
	fill(img, image.Rect(barX, barY, barX+fillWidth, barY+barHeight), s.primary)

	return img
}

// EncodePNG renders the badge and writes it as PNG.
func EncodePNG(w io.Writer, result reputation.Result) error {
	if err := png.Encode(w, Render(result)); err != nil {
		return fmt.Errorf("encode badge png: %w", err)
	}
	return nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// hexRGBA parses "#RRGGBB". Palette entries are compile-time constants,
// so parse failures fall back to black rather than erroring.
func hexRGBA(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
