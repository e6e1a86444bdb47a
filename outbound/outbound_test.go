package outbound

import "testing"

func TestNew(t *testing.T) {
	ob, err := New("", "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := ob.(*DirectOutbound); !ok {
		t.Fatalf("outbound=%T, want *DirectOutbound", ob)
	}

	ob, err = New("127.0.0.1:1080", "user", "pass")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s, ok := ob.(*SOCKS5Outbound)
	if !ok {
		t.Fatalf("outbound=%T, want *SOCKS5Outbound", ob)
	}
	if s.String() != "socks5://127.0.0.1:1080" {
		t.Fatalf("String()=%q", s.String())
	}
}
