package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/cuelink/cuelink/log"
)

// EventKind classifies engine notifications the deep-link core cares about.
type EventKind int

const (
	// EventPlay fires when playback resumes.
	EventPlay EventKind = iota
	// EventPause fires when playback is suspended.
	EventPause
	// EventEnded fires when the end of the media is reached.
	EventEnded
	// EventSeek fires when a seek completes.
	EventSeek
)

// Event is one notification from the engine.
type Event struct {
	Kind EventKind
}

// EventListener turns mpv property changes into Events on a channel.
type EventListener struct {
	socketPath string
	conn       net.Conn
	events     chan Event
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the mpv behind m.
func NewEventListener(m *MPV) *EventListener {
	return &EventListener{
		socketPath: m.Socket(),
		events:     make(chan Event, 16),
		done:       make(chan struct{}),
	}
}

// Events returns the channel events are delivered on. It is closed when the listener stops.
func (el *EventListener) Events() <-chan Event {
	return el.events
}

// Start subscribes to pause and end-of-file changes on a dedicated connection.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// observers are bound to the connection that registered them
	for id, name := range []string{"pause", "eof-reached"} {
		payload, _ := json.Marshal(ipcCommand{Command: []any{"observe_property", id + 1, name}})
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop terminates the listener. Events still in flight are dropped; the channel is closed
// once the read loop exits.
func (el *EventListener) Stop() {
	el.stopOnce.Do(func() { close(el.done) })

	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening && el.conn != nil {
		el.conn.Close()
	}
}

func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
		close(el.events)
	}()

	scanner := bufio.NewScanner(el.conn)
	for scanner.Scan() {
		event, ok := decodeEvent(scanner.Bytes())
		if !ok {
			continue
		}

		select {
		case el.events <- event:
		case <-el.done:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Warnf("event listener read error: %v", err)
	}
}

// decodeEvent maps one line of mpv output to an Event.
func decodeEvent(line []byte) (Event, bool) {
	var raw struct {
		Event string `json:"event"`
		Name  string `json:"name"`
		Data  any    `json:"data"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return Event{}, false
	}

	switch raw.Event {
	case "property-change":
		flag, _ := raw.Data.(bool)
		switch {
		case raw.Name == "pause" && flag:
			return Event{Kind: EventPause}, true
		case raw.Name == "pause":
			return Event{Kind: EventPlay}, true
		case raw.Name == "eof-reached" && flag:
			return Event{Kind: EventEnded}, true
		}
	case "playback-restart":
		return Event{Kind: EventSeek}, true
	}

	return Event{}, false
}
