// Package models holds the caller-facing shapes of the reading log: the
// joined views repositories emit, the inputs they accept, and the read
// status and sort enumerations.
//
// Stored rows live in internal/entities; internal/mapping converts between
// the two.
package models
