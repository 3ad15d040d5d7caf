// meta/meta.go
package meta

import "time"

// START_CLOCK defines the starting time per side.
const START_CLOCK = 60 * time.Second

// MAX_PLIES defines the number of plies after which a game is abandoned.
const MAX_PLIES = 300

// NUM_GAMES defines the number of games per match-up.
const NUM_GAMES = 30

// SEED seeds the opening selection of experiments.
const SEED = 42
