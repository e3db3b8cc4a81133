package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys. The same inputs always produce the same key.
type Keyer interface {
	// GraphKey names an imported graph by the hash of its source file.
	GraphKey(sourceHash string) string
	// DOTKey names the DOT document for a graph under the given options.
	DOTKey(graphHash string, opts DOTKeyOpts) string
}

// DOTKeyOpts are the export options that change DOT output or its
// guarantees.
type DOTKeyOpts struct {
	GraphName string `json:"graph_name"`
	Verified  bool   `json:"verified"`
}

// DefaultKeyer produces "graph:<sha256>" and "dot:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

func (DefaultKeyer) GraphKey(sourceHash string) string {
	return hashKey("graph", sourceHash)
}

func (DefaultKeyer) DOTKey(graphHash string, opts DOTKeyOpts) string {
	return hashKey("dot", graphHash, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
