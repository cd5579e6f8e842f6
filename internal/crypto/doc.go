// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the Key Schedule: deterministic derivation of
// the three symmetric keys (pw, mk, ak) a Standard Notes-compatible client
// needs from a user's Credentials.
//
// # Key hierarchy
//
//  1. pw (password proof) — sent to the server in place of the raw
//     passphrase during registration and sign-in.
//  2. mk (master key) — wraps the per-item key stored in an envelope's
//     enc_item_key field.
//  3. ak (authentication key) — authenticates the per-item key wrapper.
//
// All three are split out of a single 96-byte PBKDF2-HMAC-SHA512 output so
// that the derivation is compatible with existing user data and the remote
// server: this package must not substitute a locally-chosen KDF.
package crypto
