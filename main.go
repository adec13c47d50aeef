package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tictactoe/communication/server"
	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/game"
	"tictactoe/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `Usage: tictactoe [flags] [command]

Commands:
  play        play a game on the console (default)
  serve       run the move-finding agent over HTTP
  experiment  pit minimax depths against each other and write CSV records
  config      write the effective configuration to the user config file

Flags:
`

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "game mode: multiplayer, singleplayer or computer")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "search depth of computer players")
	flag.StringVar(&cfg.HumanPlays, "human", cfg.HumanPlays, "side of the human in singleplayer: x or o")
	flag.BoolVar(&cfg.Color, "color", cfg.Color, "color the board")
	flag.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")
	flag.StringVar(&cfg.Agent.Addr, "addr", cfg.Agent.Addr, "listen address of the agent server")
	flag.IntVar(&cfg.Agent.MaxDepth, "max-depth", cfg.Agent.MaxDepth, "deepest search the agent server runs")
	flag.StringVar(&cfg.Experiments.Dir, "dir", cfg.Experiments.Dir, "directory of experiment records")
	flag.IntVar(&cfg.Experiments.Games, "games", cfg.Experiments.Games, "games per experiment matchup")
	remote := flag.String("remote", "", "agent URL; computer players ask it for their moves")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *remote != "" {
		cfg.Agent.URL = *remote
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: !cfg.Color})

	command := flag.Arg(0)
	if command == "" {
		command = "play"
	}

	switch command {
	case "play":
		err = play(cfg, *remote != "")
	case "serve":
		err = serve(cfg)
	case "experiment":
		err = experiment(cfg)
	case "config":
		err = cfg.Save()
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", command)
		os.Exit(1)
	}
}

func play(cfg *config.Config, remote bool) error {
	mode, _ := game.ParseMode(cfg.Mode)
	humanSide, _ := game.ParseMark(cfg.HumanPlays)

	in := bufio.NewScanner(os.Stdin)
	display := engine.NewDisplay(os.Stdout, cfg.Color)

	computer := func(mark game.Mark) player.Player {
		name := "computer " + mark.String()
		if remote {
			return player.NewRemote(name, cfg.Agent.URL, cfg.Depth, time.Duration(cfg.Agent.TimeoutSeconds)*time.Second)
		}
		return player.NewComputer(name, cfg.Depth)
	}
	human := func(mark game.Mark) player.Player {
		h := player.NewHuman("player "+mark.String(), in, os.Stdout)
		h.SetAdvisor(player.NewComputer("advisor", cfg.Agent.MaxDepth))
		return h
	}

	var x, o player.Player
	switch mode {
	case game.Multiplayer:
		x, o = human(game.X), human(game.O)
	case game.Singleplayer:
		if humanSide == game.X {
			x, o = human(game.X), computer(game.O)
		} else {
			x, o = computer(game.X), human(game.O)
		}
	case game.Computer:
		x, o = computer(game.X), computer(game.O)
	}

	log.Debug().Msgf("playing %s at depth %d", mode, cfg.Depth)
	_, _, err := engine.LocalEngine(x, o, game.NewBoard(), display).Run()
	return err
}

func serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewAgentServer(cfg.Depth, cfg.Agent.MaxDepth).ListenAndServe(ctx, cfg.Agent.Addr)
}

func experiment(cfg *config.Config) error {
	for _, run := range []func(string, int) (*experiments.Results, error){
		experiments.RunDepthToStrength,
		experiments.RunDepthToPerfect,
	} {
		results, err := run(cfg.Experiments.Dir, cfg.Experiments.Games)
		if err != nil {
			return err
		}
		for _, tally := range results.Tallies {
			fmt.Printf("%-10v vs %-10v %4d wins %4d losses %4d ties\n",
				tally.Agent2, tally.Agent1, tally.Wins2, tally.Wins1, tally.Ties)
		}
		fmt.Printf("records written to %s\n", results.Dir)
	}
	return nil
}
