package wordcloud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var ErrNoWords = errors.New("no words to render")

type Options struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// MaxWords caps how many of the most frequent words are drawn.
	MaxWords    int     `json:"max_words"`
	MinFontSize float64 `json:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size"`
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 100
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 14
	}
	if o.MaxFontSize <= o.MinFontSize {
		o.MaxFontSize = o.MinFontSize * 5
	}
	return o
}

var palette = []color.RGBA{
	{R: 0x1b, G: 0x4f, B: 0x72, A: 0xff},
	{R: 0x21, G: 0x8c, B: 0x74, A: 0xff},
	{R: 0xb0, G: 0x3a, B: 0x2e, A: 0xff},
	{R: 0x7d, G: 0x3c, B: 0x98, A: 0xff},
	{R: 0xca, G: 0x6f, B: 0x1e, A: 0xff},
}

// Render draws the words as a flowed tag cloud, the most frequent first and
// largest. Words that no longer fit on the canvas are left out.
func Render(w io.Writer, words []WordCount, opts Options) error {
	opts = opts.withDefaults()
	if len(words) == 0 {
		return ErrNoWords
	}
	if len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	maxCount := words[0].Count
	minCount := words[len(words)-1].Count

	const margin = 10
	x, y := margin, margin
	lineHeight := 0
	for i, word := range words {
		size := opts.MinFontSize
		if maxCount > minCount {
			scale := float64(word.Count-minCount) / float64(maxCount-minCount)
			size += scale * (opts.MaxFontSize - opts.MinFontSize)
		}

		face, err := opentype.NewFace(ttf, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("create font face: %w", err)
		}

		metrics := face.Metrics()
		height := (metrics.Ascent + metrics.Descent).Ceil()
		width := font.MeasureString(face, word.Word).Ceil()

		if x+width > opts.Width-margin && x > margin {
			x = margin
			y += lineHeight
			lineHeight = 0
		}
		if y+height > opts.Height-margin {
			face.Close()
			break
		}

		drawer := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(palette[i%len(palette)]),
			Face: face,
			Dot:  fixed.P(x, y+metrics.Ascent.Ceil()),
		}
		drawer.DrawString(word.Word)
		face.Close()

		x += width + margin
		if height > lineHeight {
			lineHeight = height
		}
	}

	return png.Encode(w, img)
}

// WriteFile renders the word cloud of text into a png at path.
func WriteFile(path, text string, opts Options) error {
	words := Frequencies(text)
	if len(words) == 0 {
		return ErrNoWords
	}

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Render(f, words, opts)
}
