// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Pipeline error kinds. Stages wrap these with fmt.Errorf("...: %w", ...)
// so callers can classify failures with errors.Is while the message keeps
// the remediation hint (which stage to run). Per prd006-errors R1-R3.
var (
	// ErrPreconditionNotMet reports a missing upstream artifact: the raw
	// archive, the document store, or the index. Fatal and user-facing.
	ErrPreconditionNotMet = errors.New("precondition not met")

	// ErrCorruptIndex reports persisted index artifacts that fail the
	// alignment, dimension, or build-stamp invariants. Not auto-repaired;
	// the remedy is a full rebuild.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrEmbeddingUnavailable reports that the embedding provider could not
	// produce a vector (endpoint unreachable, model missing, timeout).
	// Fatal for the current call; no partial ranking is attempted.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
)
