package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	yes := []string{"a.mp4", "B.MOV", "clip.mkv", "x.webm", "old.AVI"}
	no := []string{"notes.txt", "a.mp4.json", "thumb.jpg", "noext"}

	for _, p := range yes {
		if !IsVideoFile(p) {
			t.Errorf("expected %q to be a video file", p)
		}
	}
	for _, p := range no {
		if IsVideoFile(p) {
			t.Errorf("expected %q not to be a video file", p)
		}
	}
}

func TestListVideos(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.mp4", "a.mkv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	videos, err := ListVideos(dir)
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d: %v", len(videos), videos)
	}
	// Sorted by name, directory named like a video excluded
	if filepath.Base(videos[0]) != "a.mkv" || filepath.Base(videos[1]) != "b.mp4" {
		t.Errorf("unexpected listing order: %v", videos)
	}
}

func TestListVideosMissingDir(t *testing.T) {
	if _, err := ListVideos(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out")

	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("expected directory to exist")
	}
	if FileExists(filepath.Join(path, "missing.mp4")) {
		t.Error("expected missing file to not exist")
	}
}
