package models

import "testing"

func TestStringListValueCanonical(t *testing.T) {
	var nilList StringList
	value, err := nilList.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "[]" {
		t.Fatalf("nil list must encode as empty array, got %v", value)
	}

	value, err = StringList{"/uploads/a.pdf", "/uploads/b.pdf"}.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != `["/uploads/a.pdf","/uploads/b.pdf"]` {
		t.Fatalf("unexpected encoding: %v", value)
	}
}

func TestStringListScanShapes(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"nil", nil, 0},
		{"empty bytes", []byte(""), 0},
		{"json null", []byte("null"), 0},
		{"array bytes", []byte(`["a","b"]`), 2},
		{"array string", `["a"]`, 1},
		{"double encoded", []byte(`"[\"a\",\"b\",\"c\"]"`), 3},
		{"double encoded null", []byte(`"null"`), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var list StringList
			if err := list.Scan(tc.input); err != nil {
				t.Fatalf("scan failed: %v", err)
			}
			if len(list) != tc.want {
				t.Fatalf("expected %d entries, got %d (%v)", tc.want, len(list), list)
			}
		})
	}
}

func TestStringListScanRejectsNonJSON(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if err := list.Scan(42); err == nil {
		t.Fatal("expected an error for unsupported column type")
	}
}

func TestCommentListRoundTrip(t *testing.T) {
	original := CommentList{
		NewComment("Alice", "S100", "Looks good"),
	}
	original[0].Department = DepartmentFinance

	value, err := original.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var decoded CommentList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(decoded))
	}
	got := decoded[0]
	if got.ID != original[0].ID || got.Author != "Alice" || got.Department != DepartmentFinance {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCommentListScanLegacyNull(t *testing.T) {
	var list CommentList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestNewCommentAssignsStableID(t *testing.T) {
	a := NewComment("Alice", "S100", "first")
	b := NewComment("Alice", "S100", "second")
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("comments must get unique IDs, got %q and %q", a.ID, b.ID)
	}
}
