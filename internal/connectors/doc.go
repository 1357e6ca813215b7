// Package connectors provides document sources that feed ingestion.
// Each connector knows how to read raw documents from one kind of location.
package connectors
