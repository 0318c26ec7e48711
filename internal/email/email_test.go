package email

import (
	"strings"
	"testing"
	"time"

	"mailmix/internal/core"
)

func TestComposeDefaultTemplates(t *testing.T) {
	composer, err := NewComposer("", "")
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	links := []string{"https://example.com/a", "https://example.com/b"}
	p := core.Period{Year: 2024, Month: time.March}

	subject, body, err := composer.Compose(links, p)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if want := "iDoklad blog – strategický mix článků (březen 2024)"; subject != want {
		t.Errorf("subject = %q, want %q", subject, want)
	}
	for _, link := range links {
		if !strings.Contains(body, link) {
			t.Errorf("body missing link %q", link)
		}
	}
	if !strings.Contains(body, "Ahoj Martine") {
		t.Error("body missing greeting")
	}
	if !strings.HasSuffix(body, "S pozdravem\nA") {
		t.Errorf("body missing signature, got tail %q", body[max(0, len(body)-30):])
	}
}

func TestComposePreservesLinkOrder(t *testing.T) {
	composer, err := NewComposer("", "")
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	links := []string{"https://z.example", "https://a.example", "https://m.example"}
	_, body, err := composer.Compose(links, core.Period{Year: 2024, Month: time.June})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	last := -1
	for _, link := range links {
		idx := strings.Index(body, link)
		if idx < 0 {
			t.Fatalf("body missing link %q", link)
		}
		if idx < last {
			t.Errorf("link %q out of order", link)
		}
		last = idx
	}
}

func TestComposeDeterministic(t *testing.T) {
	composer, _ := NewComposer("", "")
	links := []string{"https://example.com/a"}
	p := core.Period{Year: 2025, Month: time.January}

	s1, b1, _ := composer.Compose(links, p)
	s2, b2, _ := composer.Compose(links, p)
	if s1 != s2 || b1 != b2 {
		t.Error("Compose must be deterministic for identical input")
	}
}

func TestComposeCustomTemplates(t *testing.T) {
	composer, err := NewComposer(
		"Digest {{.Month}}/{{.Year}}",
		"{{len .Links}} links",
	)
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	subject, body, err := composer.Compose([]string{"a", "b"}, core.Period{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if subject != "Digest květen/2024" {
		t.Errorf("subject = %q", subject)
	}
	if body != "2 links" {
		t.Errorf("body = %q", body)
	}
}

func TestNewComposerBadTemplate(t *testing.T) {
	if _, err := NewComposer("{{.Unclosed", ""); err == nil {
		t.Error("Expected error for malformed subject template")
	}
	if _, err := NewComposer("", "{{.Unclosed"); err == nil {
		t.Error("Expected error for malformed body template")
	}
}

func TestComposeEmptyLinks(t *testing.T) {
	composer, _ := NewComposer("", "")

	_, body, err := composer.Compose(nil, core.Period{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.Contains(body, "Články bych tam dala tyto:") {
		t.Error("body structure should survive an empty link list")
	}
}
