package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

// cmdFetch prefetches chapters from the remote API into the local SQLite
// cache so the server can run without hitting the origin per request.
func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	chapter := fs.Int("chapter", 0, "chapter number to fetch (1-114)")
	all := fs.Bool("all", false, "fetch every chapter")
	cachePath := fs.String("cache", "chapters.db", "path to the chapter cache database")
	baseURL := fs.String("base-url", quran.DefaultBaseURL, "verse API base URL")
	fs.Parse(args)

	if !*all && *chapter == 0 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  tanzil fetch --chapter <n> [--cache <path>]")
		fmt.Fprintln(os.Stderr, "  tanzil fetch --all [--cache <path>]")
		os.Exit(1)
	}

	store, err := quran.OpenStore(*cachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := quran.NewClient(quran.WithBaseURL(*baseURL))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	fetchOne := func(n int) error {
		ch, err := client.LoadChapter(ctx, n)
		if err != nil {
			return err
		}
		if err := store.PutChapter(ctx, ch); err != nil {
			return err
		}
		fmt.Printf("[%3d] %s: %d verses\n", n, ch.Name.Transliteration, len(ch.Verses))
		return nil
	}

	if *all {
		failed := 0
		for n := 1; n <= quran.ChapterCount; n++ {
			if err := fetchOne(n); err != nil {
				fmt.Fprintf(os.Stderr, "[%3d] ERROR: %v\n", n, err)
				failed++
			}
		}
		if failed > 0 {
			fmt.Fprintf(os.Stderr, "%d chapters failed\n", failed)
			os.Exit(1)
		}
		return
	}

	if err := fetchOne(*chapter); err != nil {
		fmt.Fprintf(os.Stderr, "fetch chapter %d: %v\n", *chapter, err)
		os.Exit(1)
	}
}
