package histref

import "testing"

func TestResolve(t *testing.T) {
	history := []string{"alpha beta gamma", "one two"}
	tests := []struct {
		in       string
		want     string
		modified bool
	}{
		{in: "echo !:1", want: "echo two", modified: true},
		{in: "echo !:0 !:1", want: "echo one two", modified: true},
		{in: "echo !:*", want: "echo two", modified: true},
		{in: "!!", want: "one two", modified: true},
		{in: "echo !:9", want: "echo !:9", modified: false},
		{in: "echo !:", want: "echo !:", modified: false},
		{in: "echo !:x", want: "echo !:x", modified: false},
		{in: "echo a!:1", want: "echo a!:1", modified: false},
		{in: "echo hi!", want: "echo hi!", modified: false},
		{in: "plain", want: "plain", modified: false},
	}
	for _, tt := range tests {
		got, modified := Resolve(tt.in, history)
		if got != tt.want || modified != tt.modified {
			t.Fatalf("Resolve(%q)=%q,%v want %q,%v", tt.in, got, modified, tt.want, tt.modified)
		}
	}
}

func TestResolveAgainstThreeTokenCommand(t *testing.T) {
	history := []string{"one two", "alpha beta gamma"}
	got, modified := Resolve("echo !:1", history)
	if got != "echo beta" || !modified {
		t.Fatalf("Resolve=%q,%v want %q,true", got, modified, "echo beta")
	}
	got, _ = Resolve("echo !:*", history)
	if got != "echo beta gamma" {
		t.Fatalf("Resolve(!:*)=%q", got)
	}
}

func TestResolveEmptyHistory(t *testing.T) {
	got, modified := Resolve("echo !:1 !!", nil)
	if got != "echo !:1 !!" || modified {
		t.Fatalf("Resolve=%q,%v", got, modified)
	}
}

func TestResolveRequotesTokens(t *testing.T) {
	history := []string{`say "hello world" x`}
	got, _ := Resolve("echo !:1", history)
	if got != `echo "hello world"` {
		t.Fatalf("Resolve=%q", got)
	}
	got, _ = Resolve("echo !:*", history)
	if got != `echo "hello world" x` {
		t.Fatalf("Resolve(!:*)=%q", got)
	}
}

func TestResolveAdjacentReferences(t *testing.T) {
	history := []string{"a b"}
	got, modified := Resolve("!:0!:0", history)
	if got != "a!:0" || !modified {
		t.Fatalf("Resolve=%q,%v want %q,true", got, modified, "a!:0")
	}
}

func TestResolveSingleTokenStar(t *testing.T) {
	got, modified := Resolve("echo !:*", []string{"solo"})
	if got != "echo !:*" || modified {
		t.Fatalf("Resolve=%q,%v", got, modified)
	}
}
