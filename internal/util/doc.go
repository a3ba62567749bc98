// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the gideon client:
// atomic file writes and rune-safe string handling.
package util
