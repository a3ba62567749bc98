// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream decodes the backend's line-oriented chat event stream
// into discrete frames, independent of transport mechanics.
//
// The protocol is a subset of SSE: lines separated by '\n', payload
// carried only on lines starting with "data: ". The payload "[DONE]"
// terminates the stream; every other payload is a verbatim content
// delta. All other lines (blank separators, comments) are ignored.
package stream

import (
	"context"
	"io"
	"strings"
)

// dataPrefix marks payload-carrying lines.
const dataPrefix = "data: "

// doneSentinel terminates a stream.
const doneSentinel = "[DONE]"

// Kind identifies the type of a decoded frame.
type Kind int

const (
	// KindDelta carries one chunk of assistant content.
	KindDelta Kind = iota

	// KindDone marks the end of the stream. Done frames carry no payload.
	KindDone
)

// Frame is one decoded unit of the stream protocol.
type Frame struct {
	Kind    Kind
	Payload string
}

// Delta constructs a content frame.
func Delta(payload string) Frame {
	return Frame{Kind: KindDelta, Payload: payload}
}

// Done constructs a terminal frame.
func Done() Frame {
	return Frame{Kind: KindDone}
}

// =============================================================================
// DECODER
// =============================================================================

// Decoder is a restartable state machine over a carry buffer. Chunks
// may split lines at arbitrary byte boundaries, including inside the
// "data: " prefix; the last incomplete line is held until the next
// chunk completes it. A Decoder serves exactly one stream: create a
// fresh one per request.
type Decoder struct {
	buf  string
	done bool
}

// NewDecoder returns a decoder with an empty carry buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk to the carry buffer and returns the frames
// completed by it, in arrival order. After a done frame has been
// emitted all further input is discarded.
func (d *Decoder) Feed(chunk string) []Frame {
	if d.done {
		return nil
	}

	d.buf += chunk

	var frames []Frame
	for {
		i := strings.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := d.buf[:i]
		d.buf = d.buf[i+1:]

		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := line[len(dataPrefix):]

		if payload == doneSentinel {
			d.done = true
			d.buf = ""
			frames = append(frames, Done())
			return frames
		}

		frames = append(frames, Delta(payload))
	}

	return frames
}

// Done reports whether the terminal frame has been emitted.
func (d *Decoder) Done() bool {
	return d.done
}

// =============================================================================
// READER PUMP
// =============================================================================

// readBufSize is the chunk size used when draining a response body.
const readBufSize = 4096

// Pump drains r through a fresh Decoder, invoking fn for each frame in
// arrival order. It returns when a done frame is emitted, when r is
// exhausted, or when ctx is cancelled. A stream that ends without a
// done frame is not an error: the sequence simply ends, matching the
// server's contract. A trailing line without a newline is never
// flushed as content.
func Pump(ctx context.Context, r io.Reader, fn func(Frame)) error {
	dec := NewDecoder()
	buf := make([]byte, readBufSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			for _, f := range dec.Feed(string(buf[:n])) {
				fn(f)
			}
			if dec.Done() {
				return nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
