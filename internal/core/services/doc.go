// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The query pipeline is built from pure functions (Tokenize, Score, Rank,
// ExtractPassages, Synthesize, EstimateConfidence) that QueryService runs
// over a snapshot of the document store.
//
// Services are pure Go with no CGO or external dependencies.
package services
