package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/biofabric/biofabric/pkg/config"
	"github.com/biofabric/biofabric/pkg/observability"
	"github.com/biofabric/biofabric/pkg/render"
)

// renderCommand creates the render command, which extracts one frame of
// GPU-ready draw data from a session's layout and writes it in the wire
// format a viewer decodes.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		configPath string
		output     string
		jsonFormat bool
		showAll    bool
	)

	cmd := &cobra.Command{
		Use:   "render [session file]",
		Short: "Extract a render frame from a session's layout",
		Long: `Render reads a session with a computed layout, frames a viewport
covering the whole network, and extracts node lines, link lines, and
their annotation rectangles into the flat float32 buffers a GPU-backed
viewer consumes, writing them in a length-prefixed binary wire format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, output, jsonFormat, showAll)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output wire file (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	cmd.Flags().BoolVar(&jsonFormat, "json", false, "read the session as JSON instead of XML")
	cmd.Flags().BoolVar(&showAll, "show-shadows", false, "include shadow links and their full column span")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, cfg *config.Config, output string, jsonFormat, showShadows bool) error {
	sess, err := readSessionFile(input, jsonFormat)
	if err != nil {
		return fmt.Errorf("load session %s: %w", input, err)
	}
	if sess.Layout == nil {
		return fmt.Errorf("session %s has no layout; run %q first", input, "biofabric layout "+input)
	}

	c.Logger.Info("extracting render frame", "session", sess.ID, "rows", sess.Layout.RowCount, "columns", sess.Layout.ColumnCount)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, sess.ID)

	vp := wholeNetworkViewport(sess.Layout.RowCount, sess.Layout.ColumnCount)
	params := render.NewRenderParams(vp, cfg.Render.PixelsPerGridUnit, cfg.Render.CanvasWidth, cfg.Render.CanvasHeight, showShadows)
	out := render.Extract(sess.Layout, params, render.DefaultPalette())
	observability.Pipeline().OnRenderComplete(ctx, sess.ID, time.Since(start), nil)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()
	if err := render.EncodeRenderOutput(f, out); err != nil {
		return fmt.Errorf("encode render output: %w", err)
	}

	printSuccess("Render frame extracted for %q", sess.ID)
	printFile(output)
	printKeyValue("Nodes", fmt.Sprintf("%d", out.Nodes.InstanceCount()))
	printKeyValue("Links", fmt.Sprintf("%d", out.Links.InstanceCount()))
	return nil
}

// wholeNetworkViewport frames a viewport covering every row and column a
// layout can draw into, with a one-unit margin so edge rows aren't clipped.
func wholeNetworkViewport(rowCount, columnCount int) render.Viewport {
	return render.Viewport{
		X:      -1,
		Y:      -1,
		Width:  float64(columnCount) + 2,
		Height: float64(rowCount) + 2,
	}
}
