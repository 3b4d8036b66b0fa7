package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/biofabric/biofabric/pkg/align"
	aligncycle "github.com/biofabric/biofabric/pkg/align/cycle"
	alignlayout "github.com/biofabric/biofabric/pkg/align/layout"
	alignscore "github.com/biofabric/biofabric/pkg/align/score"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
	"github.com/biofabric/biofabric/pkg/observability"
	"github.com/biofabric/biofabric/pkg/progress"
	"github.com/biofabric/biofabric/pkg/session"
)

// alignCommand creates the align command, which merges two networks
// over a known correspondence, scores the alignment, and lays out the
// merged network for display.
func (c *CLI) alignCommand() *cobra.Command {
	var (
		alignmentPath string
		perfectPath   string
		mode          string
		output        string
		jsonFormat    bool
		useTUI        bool
	)

	cmd := &cobra.Command{
		Use:   "align [g1 session] [g2 session]",
		Short: "Merge and score two networks over a node alignment",
		Long: `Align reads two saved sessions, merges them over the correspondence
in --alignment (a two-column "g1Node g2Node" file, whitespace-separated,
one pair per line), computes topological and (if --perfect is given) evaluation
scores, lays out the merged network, and writes it as a new session.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildMode, err := parseAlignMode(mode)
			if err != nil {
				return err
			}
			return c.runAlign(cmd.Context(), args[0], args[1], alignmentPath, perfectPath, buildMode, output, jsonFormat, useTUI)
		},
	}

	cmd.Flags().StringVar(&alignmentPath, "alignment", "", "alignment file mapping g1 node IDs to g2 node IDs (required)")
	cmd.Flags().StringVar(&perfectPath, "perfect", "", "known-correct alignment file, for NC/NGS/LGS/JS evaluation scores")
	cmd.Flags().StringVar(&mode, "mode", "group", "layout mode: group (default), orphan, cycle")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output session file (required)")
	cmd.Flags().BoolVar(&jsonFormat, "json", false, "read and write sessions as JSON instead of XML")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show a live progress bar instead of a spinner")
	_ = cmd.MarkFlagRequired("alignment")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func parseAlignMode(s string) (alignlayout.Mode, error) {
	switch strings.ToLower(s) {
	case "group", "":
		return alignlayout.Group, nil
	case "orphan":
		return alignlayout.Orphan, nil
	case "cycle":
		return alignlayout.Cycle, nil
	default:
		return 0, fmt.Errorf("invalid alignment layout mode: %q (must be group, orphan, or cycle)", s)
	}
}

func (c *CLI) runAlign(ctx context.Context, g1Path, g2Path, alignmentPath, perfectPath string, mode alignlayout.Mode, output string, jsonFormat, useTUI bool) error {
	sess1, err := readSessionFile(g1Path, jsonFormat)
	if err != nil {
		return fmt.Errorf("load g1 session %s: %w", g1Path, err)
	}
	sess2, err := readSessionFile(g2Path, jsonFormat)
	if err != nil {
		return fmt.Errorf("load g2 session %s: %w", g2Path, err)
	}

	alignment, err := readAlignmentFile(alignmentPath)
	if err != nil {
		return fmt.Errorf("load alignment %s: %w", alignmentPath, err)
	}
	var perfect align.AlignmentMap
	if perfectPath != "" {
		perfect, err = readAlignmentFile(perfectPath)
		if err != nil {
			return fmt.Errorf("load perfect alignment %s: %w", perfectPath, err)
		}
	}

	c.Logger.Info("merging networks", "g1_nodes", sess1.Network.NodeCount(), "g2_nodes", sess2.Network.NodeCount(), "pairs", len(alignment))

	var (
		merged       *align.MergedNetwork
		scores       alignscore.Scores
		mergedLayout *layout.NetworkLayout
	)
	modeName := mode.String()
	start := time.Now()
	observability.Pipeline().OnAlignStart(ctx, modeName, sess1.Network.NodeCount(), sess2.Network.NodeCount())
	if useTUI {
		mon := progress.New(ctx, sess1.Network.NodeCount()+sess2.Network.NodeCount())
		err = runWithProgress("Merging and scoring alignment", mon, func() error {
			var innerErr error
			merged, scores, mergedLayout, innerErr = runAlignPipelineWithMonitor(mon, sess1.Network, sess2.Network, alignment, perfect, mode)
			return innerErr
		})
	} else {
		spinner := newSpinnerWithContext(ctx, "Merging and scoring alignment...")
		spinner.Start()
		merged, scores, mergedLayout, err = runAlignPipeline(ctx, sess1.Network, sess2.Network, alignment, perfect, mode)
		if err != nil {
			spinner.StopWithError("Alignment failed")
		} else {
			spinner.Stop()
		}
	}
	observability.Pipeline().OnAlignComplete(ctx, modeName, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}

	id, err := session.GenerateID()
	if err != nil {
		return err
	}
	outSess := &session.Session{
		ID:             id,
		Network:        merged.Network,
		Layout:         mergedLayout,
		DisplayOptions: session.DefaultDisplayOptions(),
		AlignmentStats: &scores,
		CreatedAt:      time.Now(),
	}

	if err := writeSessionFile(output, outSess, jsonFormat); err != nil {
		return fmt.Errorf("write session %s: %w", output, err)
	}

	printSuccess("Alignment complete")
	printFile(output)
	printAlignmentScores(scores)
	return nil
}

// runAlignPipeline runs the merge/score/layout sequence shared by the
// command and its tests.
func runAlignPipeline(ctx context.Context, g1, g2 *graph.Network, alignment, perfect align.AlignmentMap, mode alignlayout.Mode) (*align.MergedNetwork, alignscore.Scores, *layout.NetworkLayout, error) {
	mon := progress.New(ctx, g1.NodeCount()+g2.NodeCount())
	return runAlignPipelineWithMonitor(mon, g1, g2, alignment, perfect, mode)
}

// runAlignPipelineWithMonitor is runAlignPipeline with a caller-supplied
// Monitor, so a command can install its own Reporter (a TUI progress
// view) before the merge runs.
func runAlignPipelineWithMonitor(mon *progress.Monitor, g1, g2 *graph.Network, alignment, perfect align.AlignmentMap, mode alignlayout.Mode) (*align.MergedNetwork, alignscore.Scores, *layout.NetworkLayout, error) {
	merged, err := align.Merge(g1, g2, alignment, perfect, mon)
	if err != nil {
		return nil, alignscore.Scores{}, nil, err
	}

	var scores alignscore.Scores
	if perfect != nil {
		scores, err = alignscore.WithEvaluation(merged, g1, g2, alignment, perfect, mon)
	} else {
		scores, err = alignscore.Topological(merged, mon)
	}
	if err != nil {
		return nil, alignscore.Scores{}, nil, err
	}

	var cycles *aligncycle.Cycles
	if mode == alignlayout.Cycle {
		cycles, err = aligncycle.Detect(g1.Nodes(), g2.Nodes(), alignment, perfect, mon)
		if err != nil {
			return nil, alignscore.Scores{}, nil, err
		}
	}

	nl, err := alignlayout.Build(merged, mode, cycles, mon)
	if err != nil {
		return nil, alignscore.Scores{}, nil, err
	}

	return merged, scores, nl, nil
}

// readAlignmentFile parses a two-column "g1Node g2Node" alignment file
// (fields separated by any whitespace), one pair per line. Blank lines and lines starting with # are
// skipped.
func readAlignmentFile(path string) (align.AlignmentMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(align.AlignmentMap)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 fields, got %d", path, line, len(fields))
		}
		out[graph.NodeId(fields[0])] = graph.NodeId(fields[1])
	}
	return out, scanner.Err()
}

func printAlignmentScores(s alignscore.Scores) {
	printKeyValue("EC", fmt.Sprintf("%.4f", s.EC))
	printKeyValue("S3", fmt.Sprintf("%.4f", s.S3))
	printKeyValue("ICS", fmt.Sprintf("%.4f", s.ICS))
	if s.Evaluated {
		printKeyValue("NC", fmt.Sprintf("%.4f", s.NC))
		printKeyValue("NGS", fmt.Sprintf("%.4f", s.NGS))
		printKeyValue("LGS", fmt.Sprintf("%.4f", s.LGS))
		printKeyValue("JS", fmt.Sprintf("%.4f", s.JS))
		printKeyValue("PerfectCoverage", fmt.Sprintf("%.4f", s.PerfectCoverage))
	}
}
