// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - StorageDirectory: Remote personal/shared storage (search, enumeration)
//   - TokenSource: Supplies and refreshes bearer tokens per account
//   - TokenCacheStore: Persists cached refresh credentials
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Semantic ranking. Without it, results keep lexical order.
//   - TextExtractor: Document text. Without it, files are ranked by name only.
//   - IntentClassifier: Without it, every message is treated as a file search.
//   - LLMService: General answers. Without it, general messages get a canned reply.
//   - Notifier: Mailing results to the user.
//   - Authorizer: Interactive sign-in. Without it, login is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
