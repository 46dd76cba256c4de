package bus

import (
	"testing"
	"time"
)

func recv(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("nothing delivered on %v", sub.Topic())
		return nil
	}
}

func expectPayload(t *testing.T, sub *Subscription, want any) {
	t.Helper()
	if got := recv(t, sub).Payload; got != want {
		t.Fatalf("payload on %v = %v, want %v", sub.Topic(), got, want)
	}
}

func expectEmpty(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected %v on %v", m.Payload, sub.Topic())
	default:
	}
}

func TestPublishReachesExactSubscriber(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	mode := c.Subscribe(T("kbd", "mode"))
	press := c.Subscribe(T("kbd", "press"))

	c.Publish(c.NewMessage(T("kbd", "mode"), "pointer", false))
	expectPayload(t, mode, "pointer")
	expectEmpty(t, press)
}

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	c.Publish(c.NewMessage(T("kbd", "press"), 1, false))

	s := c.Subscribe(T("kbd", "press"))
	expectEmpty(t, s)
}

func TestWildcards(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")
	subs := map[string]*Subscription{
		"kbd/+":     c.Subscribe(T("kbd", "+")),
		"kbd/#":     c.Subscribe(T("kbd", "#")),
		"#":         c.Subscribe(T("#")),
		"+/fault":   c.Subscribe(T("+", "fault")),
		"kbd/mode":  c.Subscribe(T("kbd", "mode")),
		"kbd/+/sub": c.Subscribe(T("kbd", "+", "sub")),
	}
	cases := []struct {
		topic Topic
		hits  []string
	}{
		{T("kbd"), []string{"kbd/#", "#"}},
		{T("kbd", "mode"), []string{"kbd/+", "kbd/#", "#", "kbd/mode"}},
		{T("kbd", "fault"), []string{"kbd/+", "kbd/#", "#", "+/fault"}},
		{T("kbd", "mode", "sub"), []string{"kbd/#", "#", "kbd/+/sub"}},
		{T("led", "mode"), []string{"#"}},
	}
	for _, tc := range cases {
		c.Publish(c.NewMessage(tc.topic, tc.topic.Len(), false))
		hit := map[string]bool{}
		for _, h := range tc.hits {
			hit[h] = true
			expectPayload(t, subs[h], tc.topic.Len())
		}
		for name, s := range subs {
			if !hit[name] {
				expectEmpty(t, s)
			}
		}
	}
}

func TestRetainedDeliveredOnSubscribe(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("kbd", "mode"), "keyboard", true))
	c.Publish(c.NewMessage(T("kbd", "fault"), "stall", true))
	c.Publish(c.NewMessage(T("kbd", "press"), 1, false))

	expectPayload(t, c.Subscribe(T("kbd", "mode")), "keyboard")

	all := c.Subscribe(T("kbd", "#"))
	got := map[any]bool{}
	got[recv(t, all).Payload] = true
	got[recv(t, all).Payload] = true
	expectEmpty(t, all)
	if !got["keyboard"] || !got["stall"] {
		t.Fatalf("retained replay = %v", got)
	}
}

func TestRetainedReplacedAndCleared(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("kbd", "mode"), "keyboard", true))
	c.Publish(c.NewMessage(T("kbd", "mode"), "pointer", true))
	s := c.Subscribe(T("kbd", "mode"))
	expectPayload(t, s, "pointer")
	expectEmpty(t, s)

	c.Publish(c.NewMessage(T("kbd", "mode"), nil, true))
	expectPayload(t, s, nil)
	expectEmpty(t, c.Subscribe(T("kbd", "mode")))
}

func TestFullQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("kbd", "press"))

	for i := 1; i <= 3; i++ {
		c.Publish(c.NewMessage(T("kbd", "press"), i, false))
	}
	expectPayload(t, s, 2)
	expectPayload(t, s, 3)
	expectEmpty(t, s)
}

func TestUnsubscribeClosesAndPrunes(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	s := c.Subscribe(T("kbd", "fault"))
	s.Unsubscribe()
	s.Unsubscribe()

	if _, ok := <-s.Channel(); ok {
		t.Fatal("channel should be closed")
	}
	c.Publish(c.NewMessage(T("kbd", "fault"), "x", false))
	if len(b.root.next) != 0 {
		t.Fatalf("trie not pruned: %v", b.root.next)
	}
}

func TestDisconnect(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("indicator")
	s1 := c.Subscribe(T("kbd", "mode"))
	s2 := c.Subscribe(T("kbd", "#"))
	c.Disconnect()

	for _, s := range []*Subscription{s1, s2} {
		if _, ok := <-s.Channel(); ok {
			t.Fatal("channel should be closed after Disconnect")
		}
	}
	if c.ID() != "indicator" {
		t.Fatalf("ID = %q", c.ID())
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, topic Topic
		want           bool
	}{
		{T("a", "b"), T("a", "b"), true},
		{T("a", "+"), T("a", "b"), true},
		{T("a", "+"), T("a"), false},
		{T("a", "#"), T("a"), true},
		{T("#"), T("x", 1, "y"), true},
		{T("a", 1), T("a", 1), true},
		{T("a", 1), T("a", "1"), false},
		{T("a"), T("a", "b"), false},
	}
	for _, c := range cases {
		if got := Match(c.pattern, c.topic); got != c.want {
			t.Fatalf("Match(%v, %v) = %v, want %v", c.pattern, c.topic, got, c.want)
		}
	}
}

func TestTopicInvalidTokenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a non-comparable token")
		}
	}()
	_ = T([]byte{1, 2, 3})
}
