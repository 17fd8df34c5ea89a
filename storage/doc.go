// Package storage defines the repository interfaces for the persisted
// extraction output and the catalog rows, their binary serialization,
// and the offline artifact format consumed by the recommender.
// Package storage/badger provides the BadgerDB implementation.
package storage
