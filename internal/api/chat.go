// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gideon-chat/gideon-tui/internal/stream"
)

// SendChat performs a non-streaming send. The response carries the
// stored assistant message and the conversation id directly, so no
// resolution step is needed afterwards.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StreamChat performs a streaming send, invoking fn for each decoded
// frame in arrival order. It blocks until the stream finishes, the
// body is exhausted, or ctx is cancelled. The stream payload never
// carries the conversation id; callers of a new conversation resolve
// it afterwards via ListConversations.
func (c *Client) StreamChat(ctx context.Context, chatReq ChatRequest, fn func(stream.Frame)) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/chat/chat/stream", chatReq)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	c.logRequest(req)
	start := time.Now()
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("stream request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, readErr := readBody(resp)
		if readErr != nil {
			body = nil
		}
		return c.checkStatus(resp, body)
	}

	return stream.Pump(ctx, resp.Body, fn)
}
