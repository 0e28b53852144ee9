package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jsphweid/chordsmith/audio"
	"github.com/jsphweid/chordsmith/chroma"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/pitch"
)

func init() {
	chromagramCmd.Flags().String("file", "", "audio file to analyze")
	rootCmd.AddCommand(chromagramCmd)
}

var chromagramCmd = &cobra.Command{
	Use:   "chromagram",
	Short: "Renders the chroma matrix of an audio file as a png",
	Long:  `Renders the chroma matrix of an audio file as a png heat map`,
	Run:   doChromagram,
}

type chromaGrid struct {
	m chroma.Matrix
}

func (g *chromaGrid) Dims() (int, int)   { return g.m.Frames(), chroma.NumBins }
func (g *chromaGrid) Z(c, r int) float64 { return g.m[r][c] }
func (g *chromaGrid) X(c int) float64    { return float64(c) }
func (g *chromaGrid) Y(r int) float64    { return float64(r) }

func doChromagram(cmd *cobra.Command, args []string) {
	inFile, err := cmd.Flags().GetString("file")
	if err != nil || inFile == "" {
		panic("need --file")
	}

	samples, err := audio.Load(inFile, constants.AnalysisSampleRate)
	if err != nil {
		panic("could not load audio: " + err.Error())
	}

	m := chroma.Extract(samples, constants.AnalysisSampleRate, constants.HopLength, constants.WindowSize)
	if m.Frames() == 0 {
		panic("no analysis frames in " + inFile)
	}

	pal := moreland.SmoothBlueRed().Palette(32)
	h := plotter.NewHeatMap(&chromaGrid{m: m}, pal)
	h.Rasterized = true

	p := plot.New()
	p.Title.Text = "Chromagram " + inFile
	p.Add(h)
	p.X.Padding = 0
	p.Y.Padding = 0
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := make([]plot.Tick, len(pitch.Names))
		for i, name := range pitch.Names {
			ticks[i] = plot.Tick{Label: name, Value: float64(i)}
		}
		return ticks
	})

	img := vgimg.New(800, 300)
	dc := draw.New(img)
	p.Draw(dc)

	outName := inFile + ".chroma.png"
	out, err := os.Create(outName)
	if err != nil {
		panic(err)
	}
	defer out.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %v\n", outName)
}
