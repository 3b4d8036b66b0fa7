package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/biofabric/biofabric/pkg/cache"
	"github.com/biofabric/biofabric/pkg/config"
	"github.com/biofabric/biofabric/pkg/layout/edge"
	"github.com/biofabric/biofabric/pkg/layout/node"
	"github.com/biofabric/biofabric/pkg/observability"
	"github.com/biofabric/biofabric/pkg/progress"
	"github.com/biofabric/biofabric/pkg/session"
)

// layoutCommand creates the layout command, which assigns a row order
// to a session's nodes and a column to every link.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		configPath    string
		ordering      string
		linkGroupMode string
		output        string
		noCache       bool
		jsonFormat    bool
		useTUI        bool
	)

	cmd := &cobra.Command{
		Use:   "layout [session file]",
		Short: "Compute a node ordering and edge-column layout for a session",
		Long: `Layout reads a saved session (a network, optionally with a stale
layout), orders its nodes with the requested algorithm, assigns every
link a column, and writes the laid-out session back out.

Results are cached locally keyed by the network's content and the
ordering options used, so re-running with the same inputs is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if ordering != "" {
				cfg.Layout.NodeOrdering = ordering
			}
			if linkGroupMode != "" {
				cfg.Layout.LinkGroupMode = linkGroupMode
			}
			return c.runLayout(cmd.Context(), args[0], cfg, output, noCache, jsonFormat, useTUI)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to overwriting the input)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&ordering, "ordering", "", "node ordering algorithm: default, similarity, hierdag, nodecluster, controltop, set, worldbank")
	cmd.Flags().StringVar(&linkGroupMode, "link-group-mode", "", "link group sort precedence: per_node (default) or per_network")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")
	cmd.Flags().BoolVar(&jsonFormat, "json", false, "read and write the session as JSON instead of XML")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show a live progress bar instead of a spinner")

	return cmd
}

// runLayout loads the session at input, computes its layout, and
// writes the result to output (or back to input).
func (c *CLI) runLayout(ctx context.Context, input string, cfg *config.Config, output string, noCache, jsonFormat, useTUI bool) error {
	sess, err := readSessionFile(input, jsonFormat)
	if err != nil {
		return fmt.Errorf("load session %s: %w", input, err)
	}

	nodeLayout, err := cfg.Layout.ResolveNodeLayout()
	if err != nil {
		return err
	}
	edgeLayout := edge.Default{}
	nodeParams := cfg.Layout.ToNodeParams()
	edgeParams, err := cfg.Layout.ToEdgeParams()
	if err != nil {
		return err
	}

	c.Logger.Info("computing layout", "session", sess.ID, "nodes", sess.Network.NodeCount(), "ordering", cfg.Layout.NodeOrdering)

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()
	keyer := cache.NewDefaultKeyer()

	prog := newProgress(c.Logger)
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, cfg.Layout.NodeOrdering, sess.Network.NodeCount())
	var cacheHit bool
	if useTUI {
		mon := progress.New(ctx, sess.Network.NodeCount())
		err = runWithProgress("Computing layout", mon, func() error {
			var innerErr error
			cacheHit, innerErr = computeLayoutWithMonitor(ctx, sess, nodeLayout, edgeLayout, nodeParams, edgeParams, store, keyer, mon)
			return innerErr
		})
	} else {
		spinner := newSpinnerWithContext(ctx, "Computing layout...")
		spinner.Start()
		cacheHit, err = computeLayout(ctx, sess, nodeLayout, edgeLayout, nodeParams, edgeParams, store, keyer)
		if err != nil {
			spinner.StopWithError("Layout failed")
		} else {
			spinner.Stop()
		}
	}
	observability.Pipeline().OnLayoutComplete(ctx, cfg.Layout.NodeOrdering, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	prog.done("Layout computed")

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := writeSessionFile(outputPath, sess, jsonFormat); err != nil {
		return fmt.Errorf("write session %s: %w", outputPath, err)
	}

	printSuccess("Layout computed for %q", sess.ID)
	printFile(outputPath)
	printStats(sess.Network.NodeCount(), sess.Network.LinkCount(), cacheHit)
	printNewline()
	printNextStep("Render", "biofabric render "+outputPath)
	return nil
}

// computeLayout fills sess.Layout, consulting store for a cached result
// first (keyed by a content hash of the session's ID, network and
// display options, plus the ordering options used). It reports whether
// the result came from cache.
func computeLayout(ctx context.Context, sess *session.Session, nl node.Layout, el edge.Layout, nodeParams node.Params, edgeParams edge.Params, store cache.Cache, keyer cache.Keyer) (bool, error) {
	return computeLayoutWithMonitor(ctx, sess, nl, el, nodeParams, edgeParams, store, keyer, progress.New(ctx, sess.Network.NodeCount()))
}

// computeLayoutWithMonitor is computeLayout with a caller-supplied
// Monitor, so a command can install its own Reporter (a TUI progress
// view) before the layout runs.
func computeLayoutWithMonitor(ctx context.Context, sess *session.Session, nl node.Layout, el edge.Layout, nodeParams node.Params, edgeParams edge.Params, store cache.Cache, keyer cache.Keyer, mon *progress.Monitor) (bool, error) {
	var netBuf bytes.Buffer
	snapshot := &session.Session{ID: sess.ID, Network: sess.Network, DisplayOptions: sess.DisplayOptions}
	if err := session.WriteJSON(&netBuf, snapshot); err != nil {
		return false, err
	}
	networkHash := cache.Hash(netBuf.Bytes())

	opts := cache.LayoutKeyOpts{
		NodeOrdering:   nl.Name(),
		IncludeShadows: nodeParams.IncludeShadows,
		LinkGroups:     strings.Join(edgeParams.LinkGroups, ","),
		LinkGroupMode:  edgeParams.LayoutMode.String(),
	}
	key := keyer.LayoutKey(networkHash, opts)

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		if cached, err := session.ReadJSON(bytes.NewReader(data)); err == nil && cached.Layout != nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			sess.Layout = cached.Layout
			return true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	order, err := nl.LayoutNodes(sess.Network, nodeParams, mon)
	if err != nil {
		return false, err
	}
	computed, err := el.LayoutEdges(sess.Network, order, edgeParams, mon)
	if err != nil {
		return false, err
	}
	sess.Layout = computed

	var cacheBuf bytes.Buffer
	if err := session.WriteJSON(&cacheBuf, sess); err == nil {
		_ = store.Set(ctx, key, cacheBuf.Bytes(), 0)
		observability.Cache().OnCacheSet(ctx, "layout", cacheBuf.Len())
	}
	return false, nil
}

func readSessionFile(path string, jsonFormat bool) (*session.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if jsonFormat {
		return session.ReadJSON(f)
	}
	return session.ReadXML(f)
}

func writeSessionFile(path string, sess *session.Session, jsonFormat bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if jsonFormat {
		return session.WriteJSON(f, sess)
	}
	return session.WriteXML(f, sess)
}
