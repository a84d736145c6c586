package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"Buy <milk>", "Buy &lt;milk&gt;"},
		{`a & "b" 'c'`, "a &amp; &#34;b&#34; &#39;c&#39;"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTextIsIdempotent(t *testing.T) {
	raw := `<script>alert("x")</script> & more`
	once := NormalizeText(raw)
	if once != Sanitize(raw) {
		t.Errorf("NormalizeText(raw) = %q, want %q", once, Sanitize(raw))
	}
	if twice := NormalizeText(once); twice != once {
		t.Errorf("NormalizeText(sanitized) = %q, want unchanged %q", twice, once)
	}
	task := Task{Text: once}
	if task.DisplayText() != raw {
		t.Errorf("DisplayText = %q, want %q", task.DisplayText(), raw)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in     string
		want   Priority
		wantOK bool
	}{
		{"low", PriorityLow, true},
		{" HIGH ", PriorityHigh, true},
		{"Medium", PriorityMedium, true},
		{"urgent", Priority("urgent"), false},
		{"", Priority(""), false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePriority(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPriorityCycle(t *testing.T) {
	if got := PriorityHigh.Next(); got != PriorityLow {
		t.Errorf("high.Next = %q, want low", got)
	}
	if got := PriorityLow.Prev(); got != PriorityHigh {
		t.Errorf("low.Prev = %q, want high", got)
	}
	if got := PriorityLow.Next(); got != PriorityMedium {
		t.Errorf("low.Next = %q, want medium", got)
	}
}

func TestFilterMode(t *testing.T) {
	done := Task{Completed: true}
	open := Task{}

	if !FilterAll.Matches(done) || !FilterAll.Matches(open) {
		t.Error("all should match every task")
	}
	if FilterPending.Matches(done) || !FilterPending.Matches(open) {
		t.Error("pending should match only open tasks")
	}
	if !FilterCompleted.Matches(done) || FilterCompleted.Matches(open) {
		t.Error("completed should match only done tasks")
	}
	if m, ok := ParseFilterMode(""); m != FilterAll || !ok {
		t.Errorf("ParseFilterMode(\"\") = %q, %v, want all, true", m, ok)
	}
	if _, ok := ParseFilterMode("archived"); ok {
		t.Error("ParseFilterMode(archived) ok = true, want false")
	}
	if got := FilterCompleted.Next(); got != FilterAll {
		t.Errorf("completed.Next = %q, want all", got)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{}, false},
		{"due yesterday", Task{DueDate: Date{2024, time.March, 14}}, true},
		{"due today", Task{DueDate: Date{2024, time.March, 15}}, false},
		{"completed late", Task{DueDate: Date{2024, time.March, 1}, Completed: true}, false},
	}
	for _, tt := range tests {
		if got := tt.task.Overdue(now); got != tt.want {
			t.Errorf("%s: Overdue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String = %q, want 2024-02-29", d.String())
	}
	if got := d.AddDays(1); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(1) = %s, want 2024-03-01", got)
	}
	if got := d.AddDays(-60); got != (Date{2023, time.December, 31}) {
		t.Errorf("AddDays(-60) = %s, want 2023-12-31", got)
	}
	if !(Date{2023, time.December, 31}).Before(d) || d.Before(d) {
		t.Error("Before ordering is wrong")
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("ParseDate(29/02/2024) succeeded, want error")
	}
	if zero, err := ParseDate(" "); err != nil || !zero.IsZero() {
		t.Errorf("ParseDate(blank) = %v, %v, want zero date", zero, err)
	}
}

func TestDateJSON(t *testing.T) {
	task := Task{ID: 1, Text: "x", Priority: PriorityLow, DueDate: Date{2024, time.March, 1}}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":1,"text":"x","priority":"low","dueDate":"2024-03-01","completed":false,"completedAt":null}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Task
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &back); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !back.DueDate.IsZero() {
		t.Errorf("null dueDate = %s, want zero", back.DueDate)
	}
	if err := json.Unmarshal([]byte(`{"dueDate":""}`), &back); err != nil || !back.DueDate.IsZero() {
		t.Errorf("empty dueDate = %s, %v, want zero", back.DueDate, err)
	}
}
