// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the transport and
// session layers: credentials, conversations, messages and the tagged
// message identity that distinguishes locally-optimistic entries from
// server-confirmed ones.
package model
