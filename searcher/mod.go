package searcher

import "time"

// Hyperparameters for MCTS

const ExplorationConstant = 1.41

const MaxIterations = 1_000_000 // Hard cap on simulations per move

// BudgetPerMinute is the search time granted per minute left on the clock.
const BudgetPerMinute = 2 * time.Second
