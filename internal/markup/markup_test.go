package markup

import (
	"reflect"
	"testing"
)

func TestPlainStripsTags(t *testing.T) {
	got := Plain(`<p>Hello <b>world</b></p><p>second&nbsp;line &amp; more</p>`)
	want := "Hello world second line & more"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPlainDropsScripts(t *testing.T) {
	got := Plain(`safe<script>alert("x")</script><style>p{}</style> text`)
	if got != "safe text" {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func TestPlainDropsVoidElements(t *testing.T) {
	got := Plain("a<img src=x onerror=alert(1)>b")
	if got != "ab" {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("<div>one</div><div>two<br>three</div>\n\n<ul><li>four</li></ul>")
	want := []string{"one", "two", "three", "four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParagraphsEmpty(t *testing.T) {
	if got := Paragraphs("   "); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	if got := Plain(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFromTextEscapes(t *testing.T) {
	got := FromText("a < b\nsecond & last\n")
	want := "a &lt; b<br>second &amp; last"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if back := Text(got); back != "a < b\nsecond & last" {
		t.Fatalf("unexpected text projection %q", back)
	}
}

func TestPlainDropsTerminalControls(t *testing.T) {
	got := Plain("<p>hi&#27;]52;c;ZXZpbA==&#7;</p>\x1b[2J")
	if got != "hi]52;c;ZXZpbA== [2J" {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func TestCleanKeepsLayoutWhitespace(t *testing.T) {
	got := Clean("a\tb\nc\x1b\x07\u009bd\x7f")
	if got != "a\tb\ncd" {
		t.Fatalf("unexpected clean text %q", got)
	}
}

func TestLabelFlattensToOneLine(t *testing.T) {
	if got := Label(" Shopping\x1b]0;x\x07\n list\t "); got != "Shopping]0;x list" {
		t.Fatalf("unexpected label %q", got)
	}
}
