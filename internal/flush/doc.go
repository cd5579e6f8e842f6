// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package flush is the debounced-flush glue layer (spec §5): it arms a
// one-shot timer on every mutation notification and calls a Store's
// FlushDirty once the timer fires without being re-armed, instead of
// flushing synchronously after each keystroke-level edit.
package flush
