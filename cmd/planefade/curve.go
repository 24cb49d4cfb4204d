package main

import (
	"fmt"
	"io"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/planefade/fade"
	"github.com/lixenwraith/planefade/plane"
	"github.com/lixenwraith/planefade/terminal"
)

type curveOptions struct {
	color     string
	duration  time.Duration
	direction string
	width     int
	height    int
	plain     bool
}

func newCurveCmd() *cobra.Command {
	var opts curveOptions
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "print the fade schedule and channel curves for one color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCurve(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.color, "rgb", "#ff8000", "foreground color to fade (hex)")
	cmd.Flags().DurationVar(&opts.duration, "duration", time.Second, "fade duration")
	cmd.Flags().StringVar(&opts.direction, "direction", "in", "in or out")
	cmd.Flags().IntVar(&opts.width, "width", 60, "graph width")
	cmd.Flags().IntVar(&opts.height, "height", 12, "graph height")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "no colors in the graph")
	return cmd
}

// writeCurve steps a one-cell plane through every iteration and plots its channels
func writeCurve(w io.Writer, o curveOptions) error {
	c, err := colorful.Hex(o.color)
	if err != nil {
		return fmt.Errorf("color %q: %w", o.color, err)
	}
	r, g, b := c.RGB255()
	rgb := terminal.RGB{R: r, G: g, B: b}

	var dir fade.Direction
	switch o.direction {
	case "in":
		dir = fade.TowardOriginal
	case "out":
		dir = fade.TowardZero
	default:
		return fmt.Errorf("direction %q: want in or out", o.direction)
	}

	p := plane.New(1, 1)
	p.Put(0, 0, '#', plane.FgOnly(rgb))
	snap, err := fade.Capture(p, o.duration, fade.NewManualClock(time.Time{}))
	if err != nil {
		return err
	}

	series := [][]float64{
		make([]float64, 0, snap.MaxSteps()+1),
		make([]float64, 0, snap.MaxSteps()+1),
		make([]float64, 0, snap.MaxSteps()+1),
	}
	for i := 0; i <= snap.MaxSteps(); i++ {
		snap.Apply(p, dir, i)
		fg := p.Channels(0, 0).Fg
		series[0] = append(series[0], float64(fg.R))
		series[1] = append(series[1], float64(fg.G))
		series[2] = append(series[2], float64(fg.B))
	}

	fmt.Fprintf(w, "color      %s\n", rgb.Hex())
	fmt.Fprintf(w, "direction  %s\n", dir)
	fmt.Fprintf(w, "max steps  %d\n", snap.MaxSteps())
	fmt.Fprintf(w, "step       %v\n", snap.StepDuration())
	fmt.Fprintf(w, "total      %v\n\n", snap.StepDuration()*time.Duration(snap.MaxSteps()))

	graphOpts := []asciigraph.Option{
		asciigraph.Height(max(o.height, 2)),
		asciigraph.Width(max(o.width, 2)),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(255),
		asciigraph.Caption(fmt.Sprintf("fade-%s of %s over %d iterations", dir, rgb.Hex(), snap.MaxSteps())),
	}
	// Legends are drawn with the series colors, so plain output has neither
	if !o.plain {
		graphOpts = append(graphOpts,
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.SeriesLegends("R", "G", "B"),
		)
	}
	_, err = fmt.Fprintln(w, asciigraph.PlotMany(series, graphOpts...))
	return err
}
