// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session reconciles a local conversation view with the chat
// backend. A Manager owns one Session at a time: the active conversation
// id, the ordered message list, and the single in-flight send slot.
//
// Sends are optimistic. The user message is inserted with a local id
// before the network round-trip, streamed deltas are surfaced through a
// side-channel callback, and the assistant message is committed only
// when the stream completes. Failures commit a synthetic error message
// instead, so the transcript always records that a send was attempted.
package session
