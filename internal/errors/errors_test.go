package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render error",
			code:    "E001",
			wantMsg: "Component render failed",
			wantCat: CategoryRender,
		},
		{
			name:    "mount error",
			code:    "E003",
			wantMsg: "Host not found",
			wantCat: CategoryMount,
		},
		{
			name:    "config error",
			code:    "E020",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryInput, "file %q not found", "doc.yaml")
	if err.Message != `file "doc.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want the bare message", err.Error())
	}
}

func TestError_Error(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		err  *Error
		want string
	}{
		{New("E005"), "E005: Component disposed"},
		{New("E001").Wrap(cause), "E001: Component render failed: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_IsAndHasCode(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("E001").WithDetail("counter failed").Wrap(cause)
	wrapped := fmt.Errorf("mount: %w", err)

	if !stderrors.Is(wrapped, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if !HasCode(wrapped, "E001") {
		t.Error("HasCode(E001) = false")
	}
	if HasCode(wrapped, "E002") {
		t.Error("HasCode(E002) = true")
	}
	if HasCode(cause, "E001") {
		t.Error("HasCode on a plain error = true")
	}
	var ve *Error
	if !stderrors.As(wrapped, &ve) || ve.Detail != "counter failed" {
		t.Errorf("errors.As = %v", ve)
	}
}

func TestError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "vtree.json")
	content := "{\n  \"log\": {\n    \"level\": \"loud\"\n  }\n}\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E020").WithLocation(tmpFile, 3, 14)
	if err.Location == nil {
		t.Fatal("Location should not be nil")
	}
	if err.Location.Line != 3 || err.Location.Column != 14 {
		t.Errorf("Location = %v", err.Location)
	}
	if len(err.Context) == 0 {
		t.Fatal("Context should be read from the file")
	}
	found := false
	for _, line := range err.Context {
		if strings.Contains(line, `"loud"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("Context = %q, want the offending line", err.Context)
	}

	missing := New("E020").WithLocation(filepath.Join(tmpDir, "missing.json"), 1, 1)
	if missing.Context != nil {
		t.Errorf("Context for a missing file = %q, want nil", missing.Context)
	}
}

func TestError_Builders(t *testing.T) {
	err := New("E004").
		WithDetail("got int").
		WithSuggestion("pass a lookup name").
		WithContext([]string{"a", "b"})

	if err.Detail != "got int" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "pass a lookup name" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if len(err.Context) != 2 {
		t.Errorf("Context = %q", err.Context)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E010") != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := fmt.Errorf("bad name")
	got := FromError(plain, "E010")
	if got.Code != "E010" || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}

	coded := New("E003")
	if FromError(coded, "E010") != coded {
		t.Error("FromError should return an *Error unchanged")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "with column",
			loc:  &Location{File: "vtree.json", Line: 10, Column: 5},
			want: "vtree.json:10:5",
		},
		{
			name: "without column",
			loc:  &Location{File: "vtree.json", Line: 10, Column: 0},
			want: "vtree.json:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "vtree.json")
	content := "{\n  \"log\": {\n    \"format\": \"yaml\"\n  }\n}\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E020").
		WithLocation(tmpFile, 3, 15).
		WithSuggestion(`Use "text" or "json"`).
		Wrap(fmt.Errorf("unknown format"))

	formatted := err.Format()

	for _, want := range []string{
		"E020",
		"Invalid configuration",
		tmpFile,
		`"format": "yaml"`,
		"^",
		"Cause: unknown format",
		`Hint: Use "text" or "json"`,
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() should contain %q, got:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E022").WithLocation("vtree.json", 10, 5)
	compact := err.FormatCompact()

	want := "vtree.json:10:5: E022: Configuration parse error"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}

	withCause := New("E001").Wrap(fmt.Errorf("boom")).FormatCompact()
	if withCause != "E001: Component render failed: boom" {
		t.Errorf("FormatCompact() = %q", withCause)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E022").WithLocation("vtree.json", 10, 5).Wrap(fmt.Errorf("unexpected EOF"))
	json := err.FormatJSON()

	for _, want := range []string{
		`"code":"E022"`,
		`"category":"config"`,
		`"message":"Configuration parse error"`,
		`"location":{"file":"vtree.json","line":10,"column":5}`,
		`"cause":"unexpected EOF"`,
	} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() should contain %s, got %s", want, json)
		}
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("render: %w", New("E001")))
	if !strings.Contains(buf.String(), "ERROR E001: Component render failed") {
		t.Errorf("PrintError(coded) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	want := []string{"E001", "E002", "E003", "E004", "E005", "E010", "E011", "E020", "E021", "E022", "E030"}
	if len(codes) != len(want) {
		t.Errorf("GetAllCodes() returned %d codes, want %d", len(codes), len(want))
	}
	have := make(map[string]bool, len(codes))
	for _, c := range codes {
		have[c] = true
	}
	for _, c := range want {
		if !have[c] {
			t.Errorf("GetAllCodes() missing %s", c)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	tmpl, ok := GetTemplate("E021")
	if !ok {
		t.Fatal("GetTemplate(E021) not found")
	}
	if tmpl.Category != CategoryConfig {
		t.Errorf("Category = %q, want config", tmpl.Category)
	}
	if _, ok := GetTemplate("E999"); ok {
		t.Error("GetTemplate(E999) should not be found")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
