// Package session defines the saved-project container for a BioFabric
// visualization: a network, its (optional) computed layout, the
// display options the viewer was showing, and (optional) alignment
// quality statistics — plus the XML and JSON wire formats to persist
// and restore one, and a family of storage backends to keep saved
// sessions in.
//
// # Architecture
//
// A Session is produced once a network has been loaded (and usually
// laid out) and is ready to save; it round-trips through either
// [WriteXML]/[ReadXML] (the native project format) or [WriteJSON]/
// [ReadJSON] (a simpler, all-fields format more convenient for tooling).
// The Store interface abstracts where saved sessions live:
//
//	// Local CLI use
//	store, err := session.NewFileStore("")  // ~/.config/biofabric/sessions/
//
//	// Shared/production use
//	store, err := redisstore.New(ctx, redisstore.Config{Addr: "localhost:6379"})
//	store, err := mongostore.New(ctx, mongostore.Config{URI: "mongodb://localhost:27017"})
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/biofabric/biofabric/pkg/align/score"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// Sentinel errors for session store operations.
var (
	// ErrNotFound is returned when a session ID has no stored session.
	ErrNotFound = errors.New("session not found")
)

// DisplayOptions is the enumerated set of viewer toggles that ride
// alongside a saved session, independent of the network or layout
// data itself.
type DisplayOptions struct {
	ShowShadows     bool
	ShowNodeLabels  bool
	ShowLinkLabels  bool
	ShowAnnotations bool
	BackgroundColor string // hex RGB/RGBA string, e.g. "#FFFFFF"
	LineWidthScale  float64
}

// DefaultDisplayOptions returns the options a freshly loaded network
// is shown with.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		ShowShadows:     true,
		ShowNodeLabels:  true,
		ShowLinkLabels:  false,
		ShowAnnotations: true,
		BackgroundColor: "#FFFFFF",
		LineWidthScale:  1.0,
	}
}

// Session bundles everything needed to resume a visualization: the
// network, its layout if one has been computed, the display options
// the viewer was using, and alignment statistics if the network came
// from a comparison. Layout and AlignmentStats are both optional (nil
// when absent).
type Session struct {
	ID             string
	Network        *graph.Network
	Layout         *layout.NetworkLayout
	DisplayOptions DisplayOptions
	AlignmentStats *score.Scores
	CreatedAt      time.Time
}

// New creates a session wrapping net with default display options and
// a freshly generated ID. Layout and AlignmentStats are left nil;
// callers attach them once available.
func New(net *graph.Network) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:             id,
		Network:        net,
		DisplayOptions: DefaultDisplayOptions(),
		CreatedAt:      time.Now(),
	}, nil
}

// GenerateID creates a random session identifier.
func GenerateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Store is the interface every session storage backend implements:
// an in-process FileStore for CLI use, and shared backends (Redis,
// MongoDB) for multi-instance deployments.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Session, error)

	// Set saves (or overwrites) a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every saved session's ID, in backend-defined order.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the backend.
	Close() error
}
