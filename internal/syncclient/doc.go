// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncclient implements the Sync Client (spec §4.4): registration,
// sign-in, and the push/pull sync round trip against a Standard
// Notes-compatible server over HTTP/JSON.
//
// The client is strictly request-response and single-flight from any one
// Store's point of view — there is no background polling, and a second
// Sync call overlapping the first is a caller bug (spec §4.4.4, §9).
package syncclient
