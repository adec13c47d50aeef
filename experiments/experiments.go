package experiments

import (
	"fmt"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 1},
	{ID: 2, Depth: 2},
	{ID: 3, Depth: 3},
	{ID: 4, Depth: 5},
	{ID: 5, Depth: 9},
}

// Tally counts the outcomes of one matchup from the point of view of its
// two agents, whichever side they played.
type Tally struct {
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
	Wins1  int
	Wins2  int
	Ties   int
}

type Results struct {
	Dir     string
	Tallies []Tally
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

// RunDepthToStrength pairs every depth against a random baseline.
func RunDepthToStrength(root string, games int) (*Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true, Seed: 1}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment(root, "depth_to_strength", append(depthConfigs, baseline), matchUps, games)
}

// RunDepthToPerfect pairs every depth against a full-depth search.
func RunDepthToPerfect(root string, games int) (*Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.MAX_DEPTH}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs[:len(depthConfigs)-1] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment(root, "depth_to_perfect", append(depthConfigs, baseline), matchUps, games)
}

func runExperiment(root, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int) (*Results, error) {
	log.Info().Msgf("starting %s experiment...", name)

	results := &Results{}
	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %v and %v...", mi+1, len(matchUps), matchup[0], matchup[1])

		tally, gameRecords, moveRecords, err := runMatchup(matchup, games, len(results.Games))
		if err != nil {
			return nil, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		results.Tallies = append(results.Tallies, tally)
		results.Games = append(results.Games, gameRecords...)
		results.Moves = append(results.Moves, moveRecords...)

		log.Info().Msgf("completed matchup %d of %d: %v won %d, %v won %d, %d ties",
			mi+1, len(matchUps), tally.Agent1, tally.Wins1, tally.Agent2, tally.Wins2, tally.Ties)
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	results.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(results.Games); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return results, nil
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// runMatchup plays games concurrently. The agents swap sides every game so
// both get to start equally often. Game IDs continue after firstID.
func runMatchup(matchup [2]metrics.AgentConfig, games, firstID int) (Tally, []metrics.GameRecord, []metrics.MoveRecord, error) {
	played := make([]gameResult, games)

	g := errgroup.Group{}
	g.SetLimit(meta.GO_ROUTINES)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			x, o := matchup[0], matchup[1]
			if i%2 == 1 {
				x, o = o, x
			}
			gameMetric, moveMetrics, err := runGame(x, o, uint64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			id := firstID + i + 1
			played[i].record = metrics.GameRecord{ID: id, Agent1: x.ID, Agent2: o.ID, GameMetric: gameMetric}
			for _, mm := range moveMetrics {
				played[i].moves = append(played[i].moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, nil, nil, err
	}

	tally := Tally{Agent1: matchup[0], Agent2: matchup[1]}
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for i, r := range played {
		firstIsX := i%2 == 0
		switch r.record.Winner {
		case "":
			tally.Ties++
		case game.X.String():
			if firstIsX {
				tally.Wins1++
			} else {
				tally.Wins2++
			}
		default:
			if firstIsX {
				tally.Wins2++
			} else {
				tally.Wins1++
			}
		}
		gameRecords = append(gameRecords, r.record)
		moveRecords = append(moveRecords, r.moves...)
	}
	return tally, gameRecords, moveRecords, nil
}

// runGame plays one silent game. offset varies the seed of random agents
// between games.
func runGame(x, o metrics.AgentConfig, offset uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.LocalEngine(createPlayer(x, offset), createPlayer(o, offset), game.NewBoard(), nil)
	return e.Run()
}

func createPlayer(config metrics.AgentConfig, offset uint64) player.Player {
	if config.Random {
		return player.NewRandom(config.String(), config.Seed+offset)
	}
	return player.NewComputer(config.String(), config.Depth, player.WithMetrics())
}
