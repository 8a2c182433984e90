// Package uci implements the text protocol loop that drives the engine.
// Option negotiation is not supported; the handshake, position setup, go,
// stop and the debug commands d/perft/divide are.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessmind/internal/board"
	"github.com/hailam/chessmind/internal/engine"
)

// DefaultDepth is searched when "go" carries no limits.
const DefaultDepth = 5

// UCI implements the protocol loop.
type UCI struct {
	engine   *engine.Engine
	position board.Position

	cancel     context.CancelFunc
	searchDone chan struct{}
}

// New creates a protocol handler around the given engine.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
	}
}

// Run reads commands from stdin until quit or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			fmt.Println("id name chessmind")
			fmt.Println("id author chessmind contributors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.waitSearch()
			u.position = board.NewPosition()
		case "position":
			u.waitSearch()
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return
		// debug commands
		case "d":
			fmt.Println(u.position.String())
		case "perft":
			u.handlePerft(args, false)
		case "divide":
			u.handlePerft(args, true)
		default:
			log.Printf("unknown command: %s", cmd)
		}
	}
}

// handlePosition parses "position [startpos | fen <fen>] [moves m1 m2 ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
	case "fen":
		fen := strings.Join(args[1:movesAt], " ")
		pos, err := board.ParseFEN(fen)
		if err != nil {
			log.Printf("position: %v", err)
			return
		}
		u.position = pos
	default:
		return
	}

	if movesAt < len(args) {
		for _, text := range args[movesAt+1:] {
			m, err := board.ParseMove(text)
			if err != nil {
				log.Printf("position: %v", err)
				return
			}
			// promote bare UCI coordinates to a legal move of this position
			// (castling and en passant need no extra marking in this model)
			next, err := u.position.ApplyMove(m)
			if err != nil {
				log.Printf("position: %v", err)
				return
			}
			u.position = next
		}
	}
}

// handleGo starts a search. "go depth N" bounds the deepening; "go movetime
// N" (milliseconds) races the search against a deadline. The search runs on
// its own goroutine so the loop keeps servicing stop.
func (u *UCI) handleGo(args []string) {
	u.waitSearch()

	depth := DefaultDepth
	var moveTime time.Duration

	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "depth":
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = d
			}
		case "movetime":
			if ms, err := strconv.Atoi(args[i+1]); err == nil && ms > 0 {
				moveTime = time.Duration(ms) * time.Millisecond
			}
		}
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if moveTime > 0 {
		ctx, cancel = context.WithTimeout(ctx, moveTime)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	u.cancel = cancel
	u.searchDone = make(chan struct{})

	eng := u.engine
	eng.MaxDepth = depth
	eng.OnInfo = func(info engine.Info) {
		fmt.Printf("info depth %d nodes %d time %d pv %s\n",
			info.Depth, info.Nodes, info.Time.Milliseconds(), moveLine(info.PV))
	}

	pos := u.position
	done := u.searchDone
	go func() {
		defer close(done)
		defer cancel()
		res, err := eng.BestMove(ctx, pos)
		if err != nil && res.BestMove == board.NoMove {
			log.Printf("search produced no result: %v", err)
		}
		fmt.Printf("bestmove %s\n", res.BestMove)
	}()
}

// handleStop cancels the running search, if any, and waits for bestmove.
func (u *UCI) handleStop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.waitSearch()
}

// waitSearch blocks until the current search goroutine has finished.
func (u *UCI) waitSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
		u.cancel = nil
	}
}

// handlePerft counts leaf nodes at the given depth; with divide it also
// prints the per-root-move breakdown.
func (u *UCI) handlePerft(args []string, divide bool) {
	if len(args) < 1 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		log.Printf("perft: bad depth %q", args[0])
		return
	}

	start := time.Now()
	var total uint64
	if divide {
		for _, m := range u.position.LegalMoves() {
			next, err := u.position.ApplyMove(m)
			if err != nil {
				panic(err)
			}
			n := engine.Perft(next, depth-1)
			total += n
			fmt.Printf("%s: %d\n", m, n)
		}
	} else {
		total = engine.Perft(u.position, depth)
	}
	fmt.Printf("nodes %d time %d\n", total, time.Since(start).Milliseconds())
}

func moveLine(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
