// Package cache stores pipeline results between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under $XDG_CACHE_HOME/depdot (CLI default)
//   - [RedisCache]: shared cache for the API server, via go-redis
//   - [MongoCache]: shared cache in a MongoDB collection with a TTL index
//   - [NullCache]: disables caching
//
// [Open] builds one from a [Config], the way the CLI and server do from
// config.toml.
//
// # Keys
//
// A [Keyer] turns content hashes and options into keys: GraphKey for a
// decoded graph file (kept [TTLGraph]), DOTKey for an exported document
// (kept [TTLDOT] unless configured). [DefaultKeyer] hashes the inputs so
// keys have a fixed length; [ScopedKeyer] adds a namespace prefix.
//
// # Retries
//
// Remote backends wrap connection failures with [Retryable] and run each
// call through a [Backoff] ([DefaultBackoff]: 3 tries, 200ms doubling to a
// 2s cap). Server-side errors are returned as is.
package cache
