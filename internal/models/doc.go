// Package models defines the core domain models for a drop-in session.
//
// # Models
//
//   - Participant: a person on tonight's roster and how they paid
//   - QueueGroup: four player slots waiting for a court, or playing on one
//
// The roster is durable (it is persisted after every change). Queue groups
// and playing games are session-local and live only in memory.
//
// # Design Principles
//
//  1. **IDs, not pointers**: groups reference participants by ID string
//  2. **Value types**: a QueueGroup copies cleanly, so state transitions can
//     return new values without aliasing the old ones
//  3. **Wire-compatible JSON**: Participant marshals to the same shape the
//     mobile client stores, so snapshots move between the two unchanged
package models
