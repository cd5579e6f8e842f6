// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the Item Store: the in-memory map of decrypted
// Plain Items, the dirty-uuid set awaiting flush, and the content-addressed
// on-disk bucket directory that mirrors it (spec §4.3).
//
// A Store owns its items, its Key Schedule, its bucket path, and — when
// configured — a SyncClient. External callers only ever borrow read views
// of items; there are no back-references from an item into its Store.
package store
