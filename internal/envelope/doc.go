// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envelope implements the authenticated per-item ciphertext
// envelope: a two-layer encrypt/decrypt scheme binding a models.Envelope
// to the models.PlainItem it represents.
//
// # Layers
//
//  1. Item-key layer (outer) — enc_item_key is wrapped with (mk, ak) from
//     the Key Schedule. Its plaintext is a 128-hex-char random 64-byte item
//     key, split into a 32-byte item_ek and a 32-byte item_ak.
//  2. Content layer (inner) — content is wrapped with (item_ek, item_ak).
//     Its plaintext is the JSON serialization of the Note or Tag payload.
//
// Both layers share one wire format: a colon-delimited five-field string
// "003:<auth_hash_hex>:<uuid>:<iv_hex>:<ciphertext_b64>", AES-256-CBC with
// PKCS#7 padding under the relevant key, authenticated with HMAC-SHA256
// under the relevant auth key. The codec only ever sees a models.Envelope
// and a crypto.KeySchedule; it has no knowledge of item-store or
// sync-protocol concerns.
package envelope
