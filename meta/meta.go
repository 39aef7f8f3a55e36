// meta/meta.go
package meta

// MAX_ACTIONS caps the number of actions of a simulated game.
const MAX_ACTIONS = 500

// UNDO_PROBABILITY is the chance a random agent undoes or redoes instead of playing.
const UNDO_PROBABILITY = 0.05

// DEFAULT_SEED seeds the random agents.
const DEFAULT_SEED = 1830
