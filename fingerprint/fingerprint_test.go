package fingerprint

import "testing"

func TestParseBasic(t *testing.T) {
	cases := []struct {
		in       string
		segments []string
		wildcard bool
		allow    bool
	}{
		{"admin.kick", []string{"admin", "kick"}, false, true},
		{"-admin.kick", []string{"admin", "kick"}, false, false},
		{"admin.*", []string{"admin"}, true, true},
		{"-admin.*", []string{"admin"}, true, false},
		{"*", nil, true, true},
		{"-*", nil, true, false},
		{"chat.send", []string{"chat", "send"}, false, true},
	}

	for _, c := range cases {
		fp := Parse(c.in)
		if fp.Wildcard != c.wildcard || fp.Allow != c.allow {
			t.Fatalf("Parse(%q) = %+v, want wildcard=%v allow=%v", c.in, fp, c.wildcard, c.allow)
		}
		if len(fp.Segments) != len(c.segments) {
			t.Fatalf("Parse(%q) segments = %v, want %v", c.in, fp.Segments, c.segments)
		}
		for i := range c.segments {
			if fp.Segments[i] != c.segments[i] {
				t.Fatalf("Parse(%q) segments = %v, want %v", c.in, fp.Segments, c.segments)
			}
		}
		if len(fp.Hashes) != len(fp.Segments) {
			t.Fatalf("Parse(%q) hash count %d != segment count %d", c.in, len(fp.Hashes), len(fp.Segments))
		}
	}
}

func TestParseEmpty(t *testing.T) {
	fp := Parse("")
	if len(fp.Segments) != 0 || fp.Wildcard || !fp.Allow {
		t.Fatalf("Parse(\"\") = %+v, want zero value", fp)
	}
}

func TestParseTruncatesExcessSegments(t *testing.T) {
	perm := ""
	for i := 0; i < MaxSegments+10; i++ {
		if i > 0 {
			perm += "."
		}
		perm += "s"
	}
	fp := Parse(perm)
	if len(fp.Segments) != MaxSegments {
		t.Fatalf("len(Segments) = %d, want %d", len(fp.Segments), MaxSegments)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"admin.kick", "-admin.kick", "admin.*", "-admin.*"} {
		fp := Parse(in)
		if got := fp.String(); got != in {
			t.Fatalf("Parse(%q).String() = %q", in, got)
		}
	}
}

func TestRoot(t *testing.T) {
	if !Parse("*").Root() {
		t.Fatal("Parse(\"*\").Root() = false")
	}
	if !Parse("-*").Root() {
		t.Fatal("Parse(\"-*\").Root() = false")
	}
	if Parse("admin.*").Root() {
		t.Fatal("Parse(\"admin.*\").Root() = true")
	}
}

func TestCacheHitsMatchParse(t *testing.T) {
	c := NewCache(8)
	for _, perm := range []string{"admin.kick", "admin.kick", "-admin.*", "chat.send"} {
		want := Parse(perm)
		got := c.Get(perm)
		if got.String() != want.String() {
			t.Fatalf("cache.Get(%q) = %+v, want %+v", perm, got, want)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
}

func FuzzParsePermission(f *testing.F) {
	for _, seed := range []string{"admin.kick", "-admin.*", "", "*", "a.b.c.d.*", "-"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, perm string) {
		fp := Parse(perm)
		if len(fp.Segments) > MaxSegments {
			t.Fatalf("Parse(%q) produced %d segments, exceeding MaxSegments", perm, len(fp.Segments))
		}
		if len(fp.Hashes) != len(fp.Segments) {
			t.Fatalf("Parse(%q) hash/segment length mismatch", perm)
		}
	})
}
