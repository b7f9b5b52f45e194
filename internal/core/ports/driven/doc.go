// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - IndexingFilter: Decorates index documents with fields
//   - IndexingFilterPipeline: Runs filters in configured order
//   - Configuration: Read-only host configuration consumed by filters
//   - ConfigStore: Persistent application configuration
//   - Connector: Fetches documents from a data source
//   - ConnectorFactory: Creates connectors from sources
//   - Normaliser: Transforms raw documents into pages
//   - DocumentStore: Index document persistence
//   - IndexLocker: Cross-process lock held for the length of an index run
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
