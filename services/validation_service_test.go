package services

import "testing"

func TestParseFindingsBareArray(t *testing.T) {
	reply := `[{"field":"budget","severity":"major","message":"Budget section missing totals","suggested_fix":"Add a totals row"}]`
	findings, err := ParseFindings(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Field != "budget" || findings[0].Severity != "major" {
		t.Fatalf("unexpected finding: %+v", findings[0])
	}
}

func TestParseFindingsStripsCodeFences(t *testing.T) {
	reply := "```json\n[{\"field\":\"date\",\"severity\":\"minor\",\"message\":\"Date format inconsistent\"}]\n```"
	findings, err := ParseFindings(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 || findings[0].Field != "date" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestParseFindingsWrappedObject(t *testing.T) {
	reply := `{"status":"error","comments":[{"field":"signature","severity":"critical","message":"Advisor signature missing"}]}`
	findings, err := ParseFindings(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 || findings[0].Severity != "critical" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestParseFindingsDiscardsInvalidSeverity(t *testing.T) {
	reply := `[
		{"field":"a","severity":"major","message":"kept"},
		{"field":"b","severity":"catastrophic","message":"dropped"}
	]`
	findings, err := ParseFindings(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 || findings[0].Message != "kept" {
		t.Fatalf("expected only the valid finding, got %+v", findings)
	}
}

func TestParseFindingsRejectsGarbage(t *testing.T) {
	if _, err := ParseFindings("The document looks fine to me!"); err == nil {
		t.Fatal("expected an error for a non-JSON reply")
	}
	if _, err := ParseFindings(`{"verdict":"ok"}`); err == nil {
		t.Fatal("expected an error for an object without comments")
	}
}

func TestParseFindingsEmptyArray(t *testing.T) {
	findings, err := ParseFindings("[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %d", len(findings))
	}
}
