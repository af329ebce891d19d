package diagfmt

import (
	"bytes"
	"testing"
)

func TestFilePreview(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{"unchanged", "a\n.b\n", "a\n.b\n", ""},
		{
			"changed lines",
			"a\n  .b\n  .c\n",
			"a\n    .b\n  .c\n",
			"--- f.js\n+++ f.js\n@@ -2 +2 @@\n-  .b\n+    .b\n",
		},
		{
			"line count differs",
			"a\n",
			"a\nb\n",
			"--- f.js\n+++ f.js\n@@ -1,2 +1,3 @@\n-a\n-\n+a\n+b\n+\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FilePreview(&buf, "f.js", []byte(tt.before), []byte(tt.after)); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSplitPreviewLines(t *testing.T) {
	if got := splitPreviewLines(nil); got != nil {
		t.Errorf("expected nil, got %q", got)
	}
	got := splitPreviewLines([]byte("a\nb\n"))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %q", got)
	}
}
