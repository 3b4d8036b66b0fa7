// Package pkg provides the core libraries for BioFabric network
// visualization.
//
// # Overview
//
// BioFabric lays a network out as parallel horizontal node rows with
// every edge drawn as a vertical line spanning the rows of the nodes
// it connects, rather than as a node-to-node diagonal. The pkg
// directory is organized around the stages that shape turns a graph
// into a rendered frame:
//
//  1. Graph data structures ([graph])
//  2. Layout ([layout], [layout/node], [layout/edge])
//  3. Alignment ([align], [align/cycle], [align/layout], [align/score])
//  4. Interaction ([selection], [hittest])
//  5. Serving ([session], [api], [cache])
//  6. Rendering ([render])
//
// # Architecture
//
// The typical data flow through BioFabric:
//
//	graph.Network
//	     |
//	     v
//	layout/node (order nodes into rows)
//	     |
//	     v
//	layout/edge (assign links to columns)
//	     |
//	     v
//	layout.NetworkLayout
//	     |
//	     v
//	render (extract GPU-ready float32 buffers for a viewport)
//
// Two networks with a known node correspondence go through [align]
// instead: [align.Merge] combines them into one [align.MergedNetwork],
// [align/score] computes topological and evaluation metrics, and
// [align/layout] lays the merged network out in one of its three
// display modes.
//
// # Serving
//
// [session] holds a saved network plus its layout and display options,
// persisted by a [session.Store] (file, Redis, or MongoDB). [api] is
// the chi HTTP surface a WebGL host talks to: it stores sessions,
// extracts render frames for a requested viewport, and answers
// [hittest] and [selection] queries against a session's layout.
// [cache] memoizes a computed layout by the network's content hash and
// the ordering options used, so recomputing an unchanged network is
// instant.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/align/...  # Specific package
package pkg
