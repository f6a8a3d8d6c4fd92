package xhtml

import (
	"strings"
	"testing"
)

func TestCleanStripsScriptingAndStyling(t *testing.T) {
	body := `<p>keep</p><script>alert(1)</script><style>p{color:red}</style><link rel="stylesheet" href="x.css"/>`

	out := Clean(body)
	if strings.Contains(out, "alert") || strings.Contains(out, "color:red") {
		t.Errorf("script/style content survived: %q", out)
	}
	if strings.Contains(out, "<link") {
		t.Errorf("link element survived: %q", out)
	}
	if !strings.Contains(out, "<p>keep</p>") {
		t.Errorf("structural content lost: %q", out)
	}
}

func TestCleanUnwrapsInlineWrappers(t *testing.T) {
	body := `<p><span style="font-size:30px">Big</span> and <font color="red">red</font> and <b>bold</b></p>`

	out := Clean(body)
	for _, tag := range []string{"<span", "<font", "<b>"} {
		if strings.Contains(out, tag) {
			t.Errorf("wrapper %s survived: %q", tag, out)
		}
	}
	for _, text := range []string{"Big", "red", "bold"} {
		if !strings.Contains(out, text) {
			t.Errorf("wrapped text %q lost: %q", text, out)
		}
	}
}

func TestCleanDropsPresentationAttributes(t *testing.T) {
	body := `<p style="margin:0" align="center" id="p1">text</p>`

	out := Clean(body)
	if strings.Contains(out, "style=") || strings.Contains(out, "align=") {
		t.Errorf("presentation attributes survived: %q", out)
	}
	if !strings.Contains(out, `id="p1"`) {
		t.Errorf("structural id attribute lost: %q", out)
	}
}

func TestCleanKeepsImageAnnotations(t *testing.T) {
	body := `<img src="data:image/png;base64,aGk=" data-img-id="001" alt="pic" onclick="x()"/>`

	out := Clean(body)
	if !strings.Contains(out, `data-img-id="001"`) {
		t.Errorf("canonical id annotation lost: %q", out)
	}
	if !strings.Contains(out, "data:image/png;base64,aGk=") {
		t.Errorf("data URI src lost: %q", out)
	}
	if strings.Contains(out, "onclick") {
		t.Errorf("event handler survived: %q", out)
	}
}
