// Package projection pairs stored aggregates with their persistence timestamps.
package projection

import "time"

// Metadata records when a stored aggregate was first written and last rewritten.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMetadata stamps a first write at now.
func NewMetadata(now time.Time) Metadata {
	return Metadata{CreatedAt: now, UpdatedAt: now}
}

// Touched keeps CreatedAt and moves UpdatedAt to now.
func (m Metadata) Touched(now time.Time) Metadata {
	m.UpdatedAt = now
	return m
}

// Projection is an aggregate as the store last saw it.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
