// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP transport for the Gideon backend.
//
// Every outbound call goes through one interceptor that attaches the
// bearer token from the credential store and inspects the response
// status: a 401 anywhere clears the stored token and fires the
// process-wide unauthorized event exactly once. The transport performs
// no retries; retry policy, if any, belongs to the caller.
package api
