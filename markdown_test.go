package pdfdoc

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	src := "# Title\n\nSome *emphasis*.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n"
	got, err := markdownToHTML(src)
	if err != nil {
		t.Fatalf("markdownToHTML: %v", err)
	}
	for _, want := range []string{
		`<h1 id="title">Title</h1>`,
		"<em>emphasis</em>",
		"<table>",
		"<del>gone</del>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestMarkdownToHTML_DropsRawHTML(t *testing.T) {
	got, err := markdownToHTML("<script>alert(1)</script>\n\ntext")
	if err != nil {
		t.Fatalf("markdownToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %s", got)
	}
}
