// Command lrcfetch downloads lyrics for one audio file the way the editor's
// auto download does and prints the resulting timestamp index.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/llehouerou/lyricsync/internal/config"
	"github.com/llehouerou/lyricsync/internal/lrc"
	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/lyrics"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: lrcfetch <audio file> [seconds]")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	meta := lyrics.ExtractMetadata(path)
	log.Printf("Title %q, artist %q, duration %s, match %s",
		meta.Title, meta.Artist, meta.Duration, meta.MatchTag())

	text, found, err := lrcfile.Read(lrcfile.PathFor(path))
	if err != nil {
		log.Fatalf("Failed to read lyrics: %v", err)
	}
	if found {
		log.Printf("Using existing %s", lrcfile.PathFor(path))
	} else {
		text = download(cfg, meta)
	}

	index := lrc.NewIndex()
	index.Rebuild(text)
	lines := lrc.SplitLines(text)
	log.Printf("%d timed lines out of %d", index.Len(), len(lines))
	for _, e := range index.Entries() {
		fmt.Printf("%s %4d  %s\n", lrc.FormatTag(e.Offset), e.Line+1, lrc.StripTags(lines[e.Line]))
	}

	if len(os.Args) > 2 {
		sec, err := strconv.ParseFloat(os.Args[2], 64)
		if err != nil {
			log.Fatalf("Bad time %q: %v", os.Args[2], err)
		}
		if line, ok := index.Lookup(sec); ok {
			fmt.Printf("\nat %s: line %d  %s\n", lrc.FormatTag(sec), line+1, lines[line])
		} else {
			fmt.Printf("\nat %s: no line\n", lrc.FormatTag(sec))
		}
	}
}

func download(cfg *config.Config, meta lyrics.Metadata) string {
	dl := cfg.GetDownloadConfig()
	var providers []lyrics.Provider
	for _, name := range cfg.ProviderNames() {
		p, err := lyrics.NewProvider(name, lyrics.ProviderConfig{
			NeteaseCookie: cfg.Netease.Cookie,
			Timeout:       dl.Timeout(),
		})
		if err != nil {
			log.Fatalf("Failed to create provider: %v", err)
		}
		providers = append(providers, p)
	}

	log.Printf("Searching %v...", cfg.ProviderNames())
	d := lyrics.NewDownloader(providers, lyrics.WithLimit(dl.SearchLimit), lyrics.WithTimeout(dl.Timeout()))
	res, err := d.Auto(context.Background(), meta)
	if err != nil {
		log.Fatalf("Failed to download lyrics: %v", err)
	}
	log.Printf("Got %s from %s (%s)", res.Candidate.Label(), res.Candidate.Provider, res.Match)
	return res.Text
}
