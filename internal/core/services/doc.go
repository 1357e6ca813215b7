// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Document mutations are serialised per document name; reads run
// concurrently and rely on the store's transactional guarantees.
package services
