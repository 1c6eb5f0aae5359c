package sse

import (
	"context"
	"sync"

	"crudkit/internal/model"
)

// Client receives change events of one resource.
type Client struct {
	Resource string
	Ch       chan model.Event
}

func NewClient(resource string, buffer int) *Client {
	return &Client{Resource: resource, Ch: make(chan model.Event, buffer)}
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.Event
	resources  map[string]map[*Client]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	stop       sync.Once
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Event, 64),
		resources:  make(map[string]map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Register and Unregister return immediately once Run has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues an event without blocking. It reports false when the
// queue is full and the event was dropped.
func (h *Hub) Broadcast(event model.Event) bool {
	select {
	case h.broadcast <- event:
		return true
	default:
		return false
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.stop.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) Subscribers(resource string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.resources[resource])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.resources[client.Resource] == nil {
		h.resources[client.Resource] = make(map[*Client]struct{})
	}
	h.resources[client.Resource][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.resources[client.Resource]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.resources, client.Resource)
	}
}

func (h *Hub) fanOut(event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.resources[event.Resource] {
		select {
		case client.Ch <- event:
		default:
			// Drop if the client is too slow.
		}
	}
}
