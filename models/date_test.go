package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != MustDate(2024, time.February, 29) {
		t.Errorf("ParseDate() = %v", d)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String() = %q", d.String())
	}

	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("expected error for invalid month")
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Error("expected error for free text")
	}
}

func TestDateCompare(t *testing.T) {
	a := MustDate(2025, time.March, 9)
	b := MustDate(2025, time.March, 10)
	c := MustDate(2026, time.January, 1)

	if !a.Before(b) || !b.After(a) {
		t.Error("expected a < b")
	}
	if !b.Before(c) {
		t.Error("expected b < c across years")
	}
	if a.Compare(a) != 0 {
		t.Error("expected a == a")
	}
	if a.AddDays(1) != b {
		t.Errorf("AddDays(1) = %v, want %v", a.AddDays(1), b)
	}
	if MustDate(2025, time.December, 31).AddDays(1) != MustDate(2026, time.January, 1) {
		t.Error("AddDays should roll over the year")
	}
}

func TestDateJSON(t *testing.T) {
	var req SurveyRequest
	body := `{"header":"h","begin_date":"2025-01-02","end_date":null}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.BeginDate == nil || *req.BeginDate != MustDate(2025, time.January, 2) {
		t.Errorf("BeginDate = %v", req.BeginDate)
	}
	if req.EndDate != nil {
		t.Errorf("expected nil EndDate, got %v", req.EndDate)
	}

	out, err := json.Marshal(SurveyDetail{BeginDate: req.BeginDate})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	json.Unmarshal(out, &raw)
	if raw["begin_date"] != "2025-01-02" {
		t.Errorf("begin_date = %v", raw["begin_date"])
	}
	if raw["end_date"] != nil {
		t.Errorf("end_date = %v, want null", raw["end_date"])
	}

	if err := json.Unmarshal([]byte(`{"begin_date":"01/02/2025"}`), &req); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDateScan(t *testing.T) {
	want := MustDate(2025, time.June, 1)
	for _, src := range []any{"2025-06-01", []byte("2025-06-01"), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)} {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("Scan(%T) error = %v", src, err)
		}
		if d != want {
			t.Errorf("Scan(%T) = %v", src, d)
		}
	}
	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
