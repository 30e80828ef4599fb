package link

import "testing"

func TestHeartbeatLifecycle(t *testing.T) {
	var hb Heartbeat

	if hb.Online() {
		t.Fatalf("fresh heartbeat should be offline")
	}

	hb.Feed(3)
	if !hb.Online() || hb.TTL() != 3 {
		t.Fatalf("after feed: online=%v ttl=%d", hb.Online(), hb.TTL())
	}

	for i := 0; i < 3; i++ {
		if !hb.Tick() {
			t.Fatalf("went offline after %d ticks, budget was 3", i+1)
		}
	}
	if hb.Tick() {
		t.Fatalf("still online after TTL exhausted")
	}
	if hb.Online() || hb.TTL() != 0 {
		t.Fatalf("after exhaustion: online=%v ttl=%d", hb.Online(), hb.TTL())
	}

	hb.Feed(1)
	if !hb.Online() {
		t.Fatalf("feed should revive the peer")
	}
	hb.Kill()
	if hb.Online() || hb.TTL() != 0 {
		t.Fatalf("after kill: online=%v ttl=%d", hb.Online(), hb.TTL())
	}
}

func TestHeartbeatTickFloorsAtZero(t *testing.T) {
	var hb Heartbeat
	for i := 0; i < 5; i++ {
		if hb.Tick() {
			t.Fatalf("tick %d: unfed heartbeat reported online", i)
		}
		if hb.TTL() != 0 {
			t.Fatalf("tick %d: ttl went negative: %d", i, hb.TTL())
		}
	}
}
