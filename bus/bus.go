// Package bus is a small in-process topic bus used to fan controller events
// (mode changes, presses, faults) out to the other firmware services.
package bus

import (
	"reflect"
	"slices"
	"sync"
)

// Token is one element of a topic path. Any comparable value works; the
// strings "+" (one level) and "#" (this level and below) are wildcards when
// used in a subscription.
type Token any

// Topic is a sequence of tokens.
type Topic []Token

const (
	wildOne  = "+"
	wildRest = "#"
)

// T builds a topic, panicking on tokens that cannot key a map.
func T(tokens ...Token) Topic {
	for _, tok := range tokens {
		if tok == nil || !reflect.TypeOf(tok).Comparable() {
			panic("bus: topic token must be comparable")
		}
	}
	return Topic(tokens)
}

func (t Topic) Len() int       { return len(t) }
func (t Topic) At(i int) Token { return t[i] }

// Equal reports whether two topics are token-for-token identical.
func (t Topic) Equal(o Topic) bool { return slices.Equal(t, o) }

// Message is what subscribers receive. Retained messages are also replayed
// to subscriptions made after the publish.
type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// Subscription is a bounded queue of messages matching one pattern.
type Subscription struct {
	pattern Topic
	queue   chan *Message
	owner   *Connection
}

func (s *Subscription) Topic() Topic             { return s.pattern }
func (s *Subscription) Channel() <-chan *Message { return s.queue }

// Unsubscribe is shorthand for the owning connection's Unsubscribe.
func (s *Subscription) Unsubscribe() { s.owner.Unsubscribe(s) }

// deliver never blocks: a full queue loses its oldest entry.
func (s *Subscription) deliver(m *Message) {
	for {
		select {
		case s.queue <- m:
			return
		default:
		}
		select {
		case <-s.queue:
		default:
		}
	}
}

// node is one level of the subscription trie.
type node struct {
	next map[Token]*node
	subs []*Subscription
}

func (n *node) child(tok Token, create bool) *node {
	c := n.next[tok]
	if c != nil || !create {
		return c
	}
	if n.next == nil {
		n.next = map[Token]*node{}
	}
	c = &node{}
	n.next[tok] = c
	return c
}

// collect appends every subscription whose pattern matches topic[i:].
func (n *node) collect(topic Topic, i int, out []*Subscription) []*Subscription {
	if c := n.next[wildRest]; c != nil {
		out = append(out, c.subs...)
	}
	if i == len(topic) {
		return append(out, n.subs...)
	}
	if c := n.next[topic[i]]; c != nil {
		out = c.collect(topic, i+1, out)
	}
	if c := n.next[wildOne]; c != nil && topic[i] != Token(wildOne) {
		out = c.collect(topic, i+1, out)
	}
	return out
}

// Bus routes messages from publishers to matching subscriptions.
type Bus struct {
	mu       sync.Mutex
	root     *node
	retained []*Message
	depth    int
}

// NewBus creates a bus whose subscriptions queue up to queueLen messages.
func NewBus(queueLen int) *Bus {
	if queueLen < 1 {
		queueLen = 8
	}
	return &Bus{root: &node{}, depth: queueLen}
}

// NewMessage builds a message for topic.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// Publish delivers msg to every matching subscription. A retained message
// replaces the stored one for its topic; a retained nil payload clears it.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	if msg.Retained {
		b.retain(msg)
	}
	targets := b.root.collect(msg.Topic, 0, nil)
	for _, sub := range targets {
		sub.deliver(msg)
	}
	b.mu.Unlock()
}

func (b *Bus) retain(msg *Message) {
	i := slices.IndexFunc(b.retained, func(r *Message) bool { return r.Topic.Equal(msg.Topic) })
	switch {
	case i < 0 && msg.Payload != nil:
		b.retained = append(b.retained, msg)
	case i >= 0 && msg.Payload == nil:
		b.retained = slices.Delete(b.retained, i, i+1)
	case i >= 0:
		b.retained[i] = msg
	}
}

// Match reports whether a subscription pattern covers a concrete topic.
func Match(pattern, topic Topic) bool {
	for i, tok := range pattern {
		if tok == Token(wildRest) {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if tok != Token(wildOne) && tok != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}

// attach inserts sub into the trie and replays matching retained messages.
func (b *Bus) attach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range sub.pattern {
		n = n.child(tok, true)
	}
	n.subs = append(n.subs, sub)

	for _, r := range b.retained {
		if Match(sub.pattern, r.Topic) {
			sub.deliver(r)
		}
	}
}

// detach removes sub and prunes trie levels left empty.
func (b *Bus) detach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	trail := []*node{b.root}
	for _, tok := range sub.pattern {
		n := trail[len(trail)-1].child(tok, false)
		if n == nil {
			return
		}
		trail = append(trail, n)
	}
	leaf := trail[len(trail)-1]
	leaf.subs = slices.DeleteFunc(leaf.subs, func(s *Subscription) bool { return s == sub })

	for depth := len(sub.pattern); depth > 0; depth-- {
		n := trail[depth]
		if len(n.subs) > 0 || len(n.next) > 0 {
			return
		}
		delete(trail[depth-1].next, sub.pattern[depth-1])
	}
}

// Connection groups the subscriptions of one service so they can be torn
// down together.
type Connection struct {
	bus *Bus
	id  string

	mu   sync.Mutex
	live map[*Subscription]struct{}
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id, live: map[*Subscription]struct{}{}}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

// Subscribe registers a subscription owned by this connection. Retained
// messages matching topic are queued immediately.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{pattern: topic, queue: make(chan *Message, c.bus.depth), owner: c}
	c.mu.Lock()
	c.live[sub] = struct{}{}
	c.mu.Unlock()
	c.bus.attach(sub)
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is a no-op.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	_, ok := c.live[sub]
	delete(c.live, sub)
	c.mu.Unlock()
	if ok {
		c.drop(sub)
	}
}

// Disconnect closes every subscription of the connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	live := c.live
	c.live = map[*Subscription]struct{}{}
	c.mu.Unlock()

	for sub := range live {
		c.drop(sub)
	}
}

func (c *Connection) drop(sub *Subscription) {
	c.bus.detach(sub)
	close(sub.queue)
}
