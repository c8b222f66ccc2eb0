package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"heron/book"
	"heron/engine"
)

const (
	engineName   = "Heron"
	engineAuthor = "the Heron authors"
)

func main() {
	uciLoop(os.Stdin)
}

func uciLoop(input *os.File) {
	eng := engine.NewEngine()
	openingBook := book.New()
	useBook := false

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	var history []uint64
	var played []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)

		switch tokens[0] {
		case "uci":
			fmt.Printf("id name %s\n", engineName)
			fmt.Printf("id author %s\n", engineAuthor)
			fmt.Printf("option name Hash type spin default %d min 1 max 4096\n", engine.DefaultHashMB)
			fmt.Println("option name Threads type spin default 1 min 1 max 64")
			fmt.Println("option name MoveOverhead type spin default 30 min 0 max 1000")
			fmt.Println("option name OwnBook type check default false")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "setoption":
			name, value := parseOption(tokens)
			switch strings.ToLower(name) {
			case "hash":
				if n, err := strconv.Atoi(value); err == nil && n > 0 {
					eng.HashMB = n
				}
			case "threads":
				if n, err := strconv.Atoi(value); err == nil && n > 0 {
					eng.Threads = n
				}
			case "moveoverhead":
				if n, err := strconv.Atoi(value); err == nil && n >= 0 {
					eng.MoveOverhead = n
				}
			case "ownbook":
				useBook = strings.EqualFold(value, "true")
			default:
				fmt.Printf("info string unknown option %s\n", name)
			}
		case "ucinewgame":
			eng.ResetForNewGame()
			board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
			history, played = nil, nil
		case "position":
			board, history, played = parsePosition(tokens)
		case "go":
			limits := parseGo(tokens, history)
			if useBook && played != nil {
				if bm, name, err := openingBook.Move(played); err == nil && bm != "" {
					fmt.Printf("info string book move (%s)\n", name)
					fmt.Printf("bestmove %s\n", bm)
					continue
				}
			}
			result := eng.Search(&board, limits)
			fmt.Printf("bestmove %s\n", result.BestMove.String())
		case "eval":
			fmt.Printf("info string static eval %d\n", engine.Evaluation(&board))
		case "stop":
			eng.Stop()
		case "quit":
			return
		}
	}
}

// parseOption pulls name and value out of "setoption name X value Y"; the
// name itself may contain spaces.
func parseOption(tokens []string) (name, value string) {
	var names, values []string
	target := &names
	for _, tok := range tokens[1:] {
		switch tok {
		case "name":
			target = &names
		case "value":
			target = &values
		default:
			*target = append(*target, tok)
		}
	}
	return strings.Join(names, " "), strings.Join(values, " ")
}

// parsePosition rebuilds the board plus the hash history the repetition
// check needs. played is the UCI move list when the game runs from the
// start position (the book only knows those), nil otherwise.
func parsePosition(tokens []string) (dragontoothmg.Board, []uint64, []string) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	var history []uint64
	var played []string
	fromStart := true

	i := 1
	if i < len(tokens) && tokens[i] == "startpos" {
		i++
	} else if i < len(tokens) && tokens[i] == "fen" {
		i++
		var fenParts []string
		for ; i < len(tokens) && tokens[i] != "moves"; i++ {
			fenParts = append(fenParts, tokens[i])
		}
		board = dragontoothmg.ParseFen(strings.Join(fenParts, " "))
		fromStart = false
	}

	if i < len(tokens) && tokens[i] == "moves" {
		for _, ms := range tokens[i+1:] {
			move, ok := findLegalMove(&board, ms)
			if !ok {
				fmt.Printf("info string illegal move %s\n", ms)
				break
			}
			history = append(history, board.Hash())
			board.Apply(move)
			if fromStart {
				played = append(played, ms)
			}
		}
	}
	if !fromStart {
		played = nil
	}
	return board, history, played
}

// findLegalMove matches a UCI move string against the legal moves, so the
// applied move carries the generator's internal flags.
func findLegalMove(b *dragontoothmg.Board, s string) (dragontoothmg.Move, bool) {
	parsed, err := dragontoothmg.ParseMove(s)
	if err != nil {
		return 0, false
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.From() == parsed.From() && m.To() == parsed.To() && m.Promote() == parsed.Promote() {
			return m, true
		}
	}
	return 0, false
}

func parseGo(tokens []string, history []uint64) engine.SearchLimits {
	limits := engine.SearchLimits{Depth: engine.MaxPly - 1, History: history}
	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
			continue
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "nodes":
		default:
			continue
		}
		if i+1 >= len(tokens) {
			break
		}
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			continue
		}
		switch tokens[i] {
		case "depth":
			limits.Depth = n
		case "movetime":
			limits.MoveTime = n
		case "wtime":
			limits.WTime = n
		case "btime":
			limits.BTime = n
		case "winc":
			limits.WInc = n
		case "binc":
			limits.BInc = n
		case "nodes":
			limits.Nodes = int64(n)
		}
		i++
	}
	return limits
}
