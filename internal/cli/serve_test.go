package cli

import (
	"context"
	"testing"
)

func TestOpenStoreFileBackend(t *testing.T) {
	c := &CLI{}
	store, err := c.openStore(context.Background(), "file", t.TempDir(), "", 0, "", "", "")
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer store.Close()

	if _, err := store.List(context.Background()); err != nil {
		t.Errorf("List: %v", err)
	}
}

func TestOpenStoreDefaultsToFile(t *testing.T) {
	c := &CLI{}
	store, err := c.openStore(context.Background(), "", t.TempDir(), "", 0, "", "", "")
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer store.Close()
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	c := &CLI{}
	if _, err := c.openStore(context.Background(), "bogus", "", "", 0, "", "", ""); err == nil {
		t.Error("openStore should reject an unknown backend")
	}
}
