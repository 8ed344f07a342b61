package websearch

import (
	"strings"
	"testing"
)

const samplePage = `<html><body>
<div class="results">
  <div class="result">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.example.org%2Fopinion%2F123">Smith v. Jones</a>
  </div>
  <div class="result">
    <a class="result__a" href="https://other.example.com/case">Another Case</a>
  </div>
  <a class="nav" href="https://ignored.example.com">next</a>
</body></html>`

func TestExtractResultLinks(t *testing.T) {
	links, err := extractResultLinks(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("extractResultLinks: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2: %v", len(links), links)
	}
	if !strings.Contains(links[0], "uddg=") {
		t.Errorf("first link = %q, want redirect-wrapped URL", links[0])
	}
}

func TestExtractResultLinks_EmptyPage(t *testing.T) {
	links, err := extractResultLinks(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("extractResultLinks: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("got %d links, want 0", len(links))
	}
}

func TestResultHost(t *testing.T) {
	cases := []struct {
		link, want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.example.org%2Fopinion%2F123", "www.example.org"},
		{"https://other.example.com/case", "other.example.com"},
		{"/relative/path", "/relative/path"},
	}
	for _, c := range cases {
		if got := resultHost(c.link); got != c.want {
			t.Errorf("resultHost(%q) = %q, want %q", c.link, got, c.want)
		}
	}
}
