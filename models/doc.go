// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the plain data shapes shared across the core:
// credentials, plain items (Note/Tag), the on-disk/on-wire envelope, and
// the request/response bodies exchanged with the sync server.
//
// Types in this package carry no behavior beyond small accessors. All
// cryptographic and I/O logic lives in internal/crypto, internal/envelope,
// internal/store, and internal/syncclient.
package models
