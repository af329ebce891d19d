package diag

import "testing"

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{AlignDotColumn, "ALN1001"},
		{AlignOpenBracketColumn, "ALN1002"},
		{AlignCloseBracketColumn, "ALN1003"},
		{AlignPropertyColumn, "ALN1004"},
		{ParseSyntaxErrors, "PRS2002"},
		{IOLoadFileError, "IO4001"},
		{InternalSegmenter, "INT9000"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if got := AlignPropertyColumn.String(); got != "[ALN1004]: Property misaligned" {
		t.Fatalf("unexpected String(): %q", got)
	}
	if got := Code(1999).Title(); got != "Unknown error" {
		t.Fatalf("unexpected title for unknown code: %q", got)
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"info":    SevInfo,
		"Warning": SevWarning,
		"warn":    SevWarning,
		" error ": SevError,
	} {
		got, err := ParseSeverity(in)
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}
