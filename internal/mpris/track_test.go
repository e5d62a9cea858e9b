package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("img"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "song.mp3")

	if got := FindAlbumArt(track); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty", got)
	}

	touch(t, filepath.Join(dir, "folder.png"))
	touch(t, filepath.Join(dir, "cover.jpg"))
	if got, want := FindAlbumArt(track), filepath.Join(dir, "cover.jpg"); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}

func TestFindAlbumArt_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "cover.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "front.png"))

	if got, want := FindAlbumArt(filepath.Join(dir, "a.flac")), filepath.Join(dir, "front.png"); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}

func TestTrackID(t *testing.T) {
	a, b := trackID("/music/a.mp3"), trackID("/music/b.mp3")
	if a == b {
		t.Error("different paths should get different ids")
	}
	if a != trackID("/music/a.mp3") {
		t.Error("ids should be stable")
	}
}
