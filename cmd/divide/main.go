// Command divide counts leaf nodes of the legal-move tree. In single-position
// mode it prints the total (optionally broken down per root move). In suite
// mode it verifies every position of an EPD file against its recorded counts,
// caching verified totals on disk so reruns are cheap.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessmind/internal/board"
	"github.com/hailam/chessmind/internal/engine"
	"github.com/hailam/chessmind/internal/perftcache"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to count from")
	depth := flag.Int("depth", 4, "search depth in plies")
	divide := flag.Bool("divide", false, "print per-root-move counts")
	epd := flag.String("epd", "", "EPD suite file with expected counts (;Dn N fields)")
	cacheDir := flag.String("cache", "", "directory for the persistent count cache")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent suite positions")
	flag.Parse()

	var cache *perftcache.Cache
	if *cacheDir != "" {
		c, err := perftcache.Open(*cacheDir)
		if err != nil {
			log.Fatalf("open cache: %v", err)
		}
		defer c.Close()
		cache = c
	}

	if *epd != "" {
		if err := runSuite(*epd, cache, *workers); err != nil {
			log.Fatal(err)
		}
		return
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parse fen: %v", err)
	}

	start := time.Now()
	var total uint64
	if *divide {
		for _, m := range pos.LegalMoves() {
			next, err := pos.ApplyMove(m)
			if err != nil {
				log.Fatalf("apply %s: %v", m, err)
			}
			n := engine.Perft(next, *depth-1)
			total += n
			fmt.Printf("%s: %d\n", m, n)
		}
	} else {
		total = engine.Perft(pos, *depth)
	}
	fmt.Printf("nodes %d time %s\n", total, time.Since(start).Round(time.Millisecond))
}

// suiteCase is one expected count parsed out of an EPD line.
type suiteCase struct {
	fen   string
	depth int
	nodes uint64
}

// runSuite checks every (position, depth) pair of the file, distributing
// positions over workers. The first mismatch or error cancels the group.
func runSuite(path string, cache *perftcache.Cache, workers int) error {
	cases, err := loadSuite(path)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	start := time.Now()
	for _, tc := range cases {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if cache != nil {
				got, ok, err := cache.Get(tc.fen, tc.depth)
				if err != nil {
					return err
				}
				if ok {
					if got != tc.nodes {
						return fmt.Errorf("%s D%d: cached %d, expected %d", tc.fen, tc.depth, got, tc.nodes)
					}
					return nil
				}
			}

			pos, err := board.ParseFEN(tc.fen)
			if err != nil {
				return fmt.Errorf("%s: %w", tc.fen, err)
			}
			got := engine.Perft(pos, tc.depth)
			if got != tc.nodes {
				return fmt.Errorf("%s D%d: got %d, expected %d", tc.fen, tc.depth, got, tc.nodes)
			}
			log.Printf("ok %s D%d = %d", tc.fen, tc.depth, got)

			if cache != nil {
				return cache.Put(tc.fen, tc.depth, got)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("suite passed: %d checks in %s", len(cases), time.Since(start).Round(time.Millisecond))
	return nil
}

// loadSuite parses an EPD file. Each line is a FEN followed by one or more
// ";Dn N" fields, e.g.
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
//
// Blank lines and lines starting with # are skipped.
func loadSuite(path string) ([]suiteCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []suiteCase
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		fen := strings.TrimSpace(fields[0])
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: no depth fields", path, lineNo)
		}
		for _, field := range fields[1:] {
			field = strings.TrimSpace(field)
			parts := strings.Fields(field)
			if len(parts) != 2 || !strings.HasPrefix(parts[0], "D") {
				return nil, fmt.Errorf("%s:%d: bad field %q", path, lineNo, field)
			}
			depth, err := strconv.Atoi(parts[0][1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad depth %q", path, lineNo, parts[0])
			}
			nodes, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad count %q", path, lineNo, parts[1])
			}
			cases = append(cases, suiteCase{fen: fen, depth: depth, nodes: nodes})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}
