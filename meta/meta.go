// meta/meta.go
package meta

// DEFAULT_DEPTH is the search depth of computer players unless configured.
const DEFAULT_DEPTH = 3

// MAX_DEPTH searches the whole game from an empty board.
const MAX_DEPTH = 9

// DEFAULT_ADDR is where the agent server listens.
const DEFAULT_ADDR = ":8080"

// GAMES_PER_MATCHUP defines the number of games per arena matchup.
const GAMES_PER_MATCHUP = 100

// GO_ROUTINES defines the number of games of one matchup the arena plays at once.
const GO_ROUTINES = 8

// REQUEST_TIMEOUT_SECONDS bounds one remote find-move call.
const REQUEST_TIMEOUT_SECONDS = 10
