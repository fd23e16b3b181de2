// Package store persists the card collection, progress ledger and session
// log as JSON blobs behind a small key-value contract.
package store

import "errors"

// ErrNotFound is returned by KV.Load when no blob exists under the key.
var ErrNotFound = errors.New("key not found")

// ErrCardNotFound is returned when a review commit references a card id
// absent from the collection.
var ErrCardNotFound = errors.New("card not found")

// KV is the blob storage contract. Implementations must make Save
// replace any existing value under the key.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
}
