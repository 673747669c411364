// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: The in-memory corpus
//   - HistoryStore: Answered questions for the current process
//   - Normaliser: Turns raw bytes of one file type into a Document
//   - NormaliserRegistry: Selects the normaliser for a file type
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Fetcher: Retrieves web pages. Without it, URL ingestion is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
