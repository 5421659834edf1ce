package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestLocatePointer(t *testing.T) {
	flat := `{"a":1,"b":2}`
	nested := "{\n  \"runtime\": {\n    \"type\": 5\n  }\n}"

	tests := []struct {
		name    string
		pointer string
		text    string
		want    int
	}{
		{name: "empty pointer", pointer: "", text: flat, want: 0},
		{name: "root pointer", pointer: "/", text: flat, want: 0},
		{name: "top level key", pointer: "/b", text: flat, want: strings.Index(flat, "b")},
		{name: "nested key", pointer: "/runtime/type", text: nested, want: strings.Index(nested, "type")},
		{name: "missing segment is skipped", pointer: "/nope/b", text: flat, want: strings.Index(flat, "b")},
		{name: "all segments missing", pointer: "/x/y/z", text: flat, want: 0},
		{name: "numeric index degrades to no-op", pointer: "/ports/2", text: `{"ports":[true,false]}`, want: strings.Index(`{"ports":[true,false]}`, "ports")},
		{name: "empty text", pointer: "/a", text: "", want: 0},
		{name: "first occurrence wins", pointer: "/b", text: `{"ab":1,"b":2}`, want: strings.Index(`{"ab":1,"b":2}`, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocatePointer(tt.pointer, tt.text); got != tt.want {
				t.Errorf("LocatePointer(%q) = %d, want %d", tt.pointer, got, tt.want)
			}
		})
	}
}

func TestLocatePointerShrinksSuffix(t *testing.T) {
	// "type" appears before "runtime", but matching proceeds through a
	// shrinking suffix, so the second occurrence is found.
	text := `{"type":"x","runtime":{"type":5}}`
	got := LocatePointer("/runtime/type", text)
	want := strings.LastIndex(text, "type")
	if got != want {
		t.Errorf("LocatePointer = %d, want %d (second occurrence)", got, want)
	}
}

func TestPointerSegments(t *testing.T) {
	tests := []struct {
		pointer string
		want    []string
	}{
		{pointer: "", want: nil},
		{pointer: "/", want: nil},
		{pointer: "/a", want: []string{"a"}},
		{pointer: "/a/b/0", want: []string{"a", "b", "0"}},
		{pointer: "/a~1b/c~0d", want: []string{"a/b", "c~d"}},
	}

	for _, tt := range tests {
		got := PointerSegments(tt.pointer)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PointerSegments(%q) = %v, want %v", tt.pointer, got, tt.want)
		}
	}
}

func TestJoinPointerRoundTrip(t *testing.T) {
	pointers := []string{"", "/a", "/a/b/0", "/a~1b/c~0d"}
	for _, p := range pointers {
		if got := JoinPointer(PointerSegments(p)); got != p {
			t.Errorf("JoinPointer(PointerSegments(%q)) = %q", p, got)
		}
	}
}

func TestIsIndex(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"0", true},
		{"42", true},
		{"", false},
		{"-1", false},
		{"1a", false},
		{"name", false},
	}
	for _, tt := range tests {
		if got := isIndex(tt.segment); got != tt.want {
			t.Errorf("isIndex(%q) = %v, want %v", tt.segment, got, tt.want)
		}
	}
}
