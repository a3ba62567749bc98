// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// Sentinel errors returned by facade operations. All of them mean the
// operation was rejected before any state changed.
var (
	// ErrEmptyMessage is returned when a send contains only whitespace.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoCredential is returned when no API credential is selected.
	ErrNoCredential = errors.New("no active API credential selected")

	// ErrSendInFlight is returned when a send is attempted while a
	// previous send has not completed.
	ErrSendInFlight = errors.New("a send is already in progress")

	// ErrEmptyTitle is returned when a rename target title is blank.
	ErrEmptyTitle = errors.New("conversation title is empty")

	// ErrNothingToExport is returned when exporting an empty session.
	ErrNothingToExport = errors.New("no messages to export")

	// ErrSessionDisposed is returned when operating on a disposed session.
	ErrSessionDisposed = errors.New("session has been disposed")
)
