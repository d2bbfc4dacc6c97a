package credstore

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), ".jot.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	creds := Credentials{
		URL:      "https://jira.example.com",
		Username: "alice",
		Secret:   "s3cret",
		LoggedIn: true,
	}
	if err := store.Save(ctx, creds); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected credentials to be found")
	}
	if loaded.URL != creds.URL || loaded.Username != creds.Username || loaded.Secret != creds.Secret {
		t.Fatalf("roundtrip mismatch: %+v", loaded)
	}
	if !loaded.LoggedIn {
		t.Fatal("expected logged_in to persist")
	}
	if loaded.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("expected cleared store, found=%v err=%v", found, err)
	}
}

func TestSaveReplacesPreviousLogin(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := Credentials{URL: "https://a.example.com", Username: "alice", Secret: "one", LoggedIn: true}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := Credentials{URL: "https://b.example.com", Username: "bob", Secret: "two", LoggedIn: true}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if loaded.Username != "bob" || loaded.Secret != "two" {
		t.Fatalf("expected second login to win, got %+v", loaded)
	}
}

func TestSaveRequiresURLAndUsername(t *testing.T) {
	store := openTestStore(t)
	if err := store.Save(context.Background(), Credentials{Username: "alice"}); err == nil {
		t.Fatal("expected error for missing url")
	}
	if err := store.Save(context.Background(), Credentials{URL: "https://jira.example.com"}); err == nil {
		t.Fatal("expected error for missing username")
	}
}

func TestSecretSealing(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		sealed, err := sealSecret([]byte("hunter2"))
		if err != nil {
			t.Fatalf("seal: %v", err)
		}
		if bytes.Contains(sealed, []byte("hunter2")) {
			t.Fatal("secret stored in the clear")
		}
		plain, err := openSecret(sealed)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if string(plain) != "hunter2" {
			t.Fatalf("roundtrip mismatch: %q", plain)
		}
	})

	t.Run("tamper detection", func(t *testing.T) {
		sealed, err := sealSecret([]byte("hunter2"))
		if err != nil {
			t.Fatalf("seal: %v", err)
		}
		sealed[len(sealed)-1] ^= 0xff
		if _, err := openSecret(sealed); err == nil {
			t.Fatal("expected open to fail on tampered box")
		}
	})

	t.Run("short input", func(t *testing.T) {
		if _, err := openSecret([]byte("short")); err == nil {
			t.Fatal("expected error for truncated box")
		}
	})
}
