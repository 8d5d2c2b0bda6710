// Command dbinspect prints what the configured backend holds under each application key.
//
// It reads the same flags, environment and .env file as the server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/litnotes/litnotes/internal/codec"
	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/di/providers"
	"github.com/litnotes/litnotes/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s, err := providers.OpenStore(ctx, cfg.Storage, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	fmt.Println("=== Storage Inspection ===")
	fmt.Printf("Backend: %s\n", cfg.Storage.Backend)
	fmt.Println()

	c := codec.New()
	failed := false
	for _, key := range store.AllKeys {
		data, err := s.Get(ctx, key)
		switch {
		case store.IsNotFound(err):
			fmt.Printf("%-26s absent\n", key)
			continue
		case err != nil:
			fmt.Printf("%-26s read error: %v\n", key, err)
			failed = true
			continue
		}

		fmt.Printf("%-26s %d bytes, %s\n", key, len(data), describe(c, key, data))
	}

	if failed {
		os.Exit(1)
	}
}

// describe summarizes a value the way the library would decode it.
func describe(c *codec.Codec, key string, data []byte) string {
	switch key {
	case store.KeyBooks:
		books, err := c.DecodeBooks(data)
		if err != nil {
			return fmt.Sprintf("undecodable (%v), would be reseeded", err)
		}
		reading, finished := 0, 0
		for _, b := range books {
			switch {
			case b.IsFinished():
				finished++
			case b.CurrentPage > 0:
				reading++
			}
		}
		return fmt.Sprintf("%d books (%d reading, %d finished)", len(books), reading, finished)

	case store.KeyNotes:
		notes, err := c.DecodeNotes(data)
		if err != nil {
			return fmt.Sprintf("undecodable (%v), would load as empty", err)
		}
		perBook := make(map[string]int)
		for _, n := range notes {
			perBook[n.BookID]++
		}
		return fmt.Sprintf("%d notes across %d books", len(notes), len(perBook))

	case store.KeyPreferences:
		prefs, err := c.DecodePreferences(data)
		if err != nil {
			return fmt.Sprintf("undecodable (%v), would load defaults", err)
		}
		return fmt.Sprintf("goal %d, favorites %v, dark mode %t, notifications %t",
			prefs.ReadingGoal, prefs.FavoriteGenres, prefs.IsDarkMode, prefs.NotificationsEnabled)

	default:
		return fmt.Sprintf("%q", data)
	}
}
