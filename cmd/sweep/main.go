// Command sweep plays a game in the terminal. With -batch it reads command
// lines from stdin instead and prints the board after each one.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var log = logrus.New()

func main() {
	var (
		params mines.GameParams
		debug  bool
		batch  bool
		seed   string
	)
	flag.IntVar(&params.Width, "width", 9, "board width")
	flag.IntVar(&params.Height, "height", 9, "board height")
	flag.IntVar(&params.MineCount, "mines", 10, "number of mines")
	flag.StringVar(&seed, "params", "", "board parameters as width:height:mines, overrides the other flags")
	flag.BoolVar(&debug, "debug", false, "enable debug commands and logging")
	flag.BoolVar(&batch, "batch", false, "read commands from stdin")
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
		mines.Log.SetLevel(logrus.DebugLevel)
	}

	if seed != "" {
		p, err := mines.ParseSeed(seed)
		if err != nil {
			log.Fatal(err)
		}
		params = *p
	}

	game, err := mines.NewGame(params, nil)
	if err != nil {
		log.Fatal(err)
	}
	log.WithField("params", params.Seed()).Debug("dealt board")

	if batch {
		if err := runBatch(game, os.Stdin, os.Stdout, debug); err != nil {
			log.Fatal(err)
		}
		return
	}

	if _, err := tea.NewProgram(newModel(game, debug)).Run(); err != nil {
		log.Fatal(err)
	}
}

// runBatch executes one command per input line. Malformed lines are
// reported and skipped.
func runBatch(game *mines.Game, r io.Reader, w io.Writer, debug bool) error {
	opts := command.Options{AllowDebug: debug}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		cmds, err := command.ParseBatch(scanner.Text())
		if err == nil {
			_, err = command.Execute(game, cmds, opts)
		}
		if err != nil {
			fmt.Fprintf(w, "line %d: %s\n", line, unwrapLine(err))
			continue
		}
		if len(cmds) == 0 {
			continue
		}
		b := game.Board()
		fmt.Fprintf(w, "%s%s, %d/%d marked\n", b, b.Status(), b.Marks(), b.MineCount())
	}
	return scanner.Err()
}

func unwrapLine(err error) error {
	var le *command.LineError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
