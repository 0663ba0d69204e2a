// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/danielhkuo/quickly-rate/survey"
)

// Hub fans the latest survey view out to every connected page.
type Hub struct {
	source func() survey.View

	register   chan *Client
	unregister chan *Client
	wake       chan struct{}
	done       chan struct{}

	mu          sync.Mutex
	latest      []byte
	lastVersion uint64
	published   bool

	clients map[*Client]bool
}

// NewHub creates a hub. source supplies the view sent to a page right
// after it connects.
func NewHub(source func() survey.View) *Hub {
	return &Hub{
		source:     source,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Publish queues v for broadcast. Views older than the last published
// one are dropped, and a burst of views collapses into the newest.
// Publish never blocks.
func (h *Hub) Publish(v survey.View) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode view", "error", err)
		return
	}

	h.mu.Lock()
	if h.published && v.Version <= h.lastVersion {
		h.mu.Unlock()
		return
	}
	h.latest = data
	h.lastVersion = v.Version
	h.published = true
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Run owns the client set until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			slog.Debug("stream client connected", "remote", client.remote, "clients", len(h.clients))
			if data, err := json.Marshal(h.source()); err == nil {
				h.send(client, data)
			}

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				close(client.send)
				slog.Debug("stream client disconnected", "remote", client.remote, "clients", len(h.clients))
			}

		case <-h.wake:
			h.mu.Lock()
			data := h.latest
			h.mu.Unlock()
			for client := range h.clients {
				h.send(client, data)
			}

		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// send drops a client whose buffer is full; its page reconnects and
// gets the current view again.
func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		slog.Warn("stream client too slow, dropping", "remote", client.remote)
		delete(h.clients, client)
		close(client.send)
	}
}
