package snapshot

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/tgienger/tasks/internal/errs"
	"github.com/tgienger/tasks/internal/models"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil, FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Encode(nil) = %q, want %q", data, "[]\n")
	}
}

func TestEncodeIndentsJSON(t *testing.T) {
	data, err := Encode([]models.Task{{ID: 1, Text: "x", Priority: models.PriorityLow}}, FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"id\": 1,") {
		t.Errorf("Encode = %q, want 2-space indented array", data)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errs.Code
	}{
		{"truncated json", `[{"id":`, FormatJSON, errs.CodeParse},
		{"trailing data", `[] []`, FormatJSON, errs.CodeParse},
		{"json object", `{"tasks": []}`, FormatJSON, errs.CodeFormat},
		{"json string", `"tasks"`, FormatJSON, errs.CodeFormat},
		{"bad yaml", "- id: [1\n", FormatYAML, errs.CodeParse},
		{"yaml mapping", "id: 1\n", FormatYAML, errs.CodeFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errs.Is(err, tt.code) {
				t.Errorf("Decode error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDecodeKeepsNumbersExact(t *testing.T) {
	records, err := Decode([]byte(`[{"id": 1710496800123}]`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m := records[0].(map[string]any)
	if n, ok := m["id"].(json.Number); !ok || n.String() != "1710496800123" {
		t.Errorf("id = %#v, want json.Number 1710496800123", m["id"])
	}
}

func TestValidate(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{"id": json.Number("1"), "text": "x", "priority": "low", "completed": false}
	}
	with := func(key string, v any) map[string]any {
		m := valid()
		if v == nil {
			delete(m, key)
		} else {
			m[key] = v
		}
		return m
	}

	tests := []struct {
		name   string
		record any
		ok     bool
	}{
		{"valid", valid(), true},
		{"not an object", []any{1}, false},
		{"missing id", with("id", nil), false},
		{"string id", with("id", "1"), false},
		{"fractional id", with("id", json.Number("1.5")), false},
		{"integral float id", with("id", float64(3)), true},
		{"numeric text", with("text", 5), false},
		{"bogus priority", with("priority", "bogus"), false},
		{"uppercase priority", with("priority", "LOW"), false},
		{"string completed", with("completed", "false"), false},
		{"missing completed", with("completed", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Validate(tt.record, now); ok != tt.ok {
				t.Errorf("Validate ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	rec := map[string]any{
		"id":          json.Number("7"),
		"text":        "<b>bold</b> &amp; done",
		"priority":    "high",
		"completed":   true,
		"dueDate":     "not a date",
		"completedAt": "2024-03-14T08:30:00Z",
	}
	task, ok := Validate(rec, now)
	if !ok {
		t.Fatal("Validate rejected a valid record")
	}
	if task.Text != "&lt;b&gt;bold&lt;/b&gt; &amp; done" {
		t.Errorf("Text = %q, want sanitized once", task.Text)
	}
	if task.HasDueDate() {
		t.Errorf("DueDate = %s, want none for unparseable value", task.DueDate)
	}
	want := time.Date(2024, time.March, 14, 8, 30, 0, 0, time.UTC)
	if task.CompletedAt == nil || !task.CompletedAt.Equal(want) {
		t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, want)
	}
}

func TestValidateCompletedAtFollowsCompleted(t *testing.T) {
	done := map[string]any{"id": json.Number("1"), "text": "x", "priority": "low", "completed": true}
	task, _ := Validate(done, now)
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("completed without timestamp: CompletedAt = %v, want %v", task.CompletedAt, now)
	}

	open := map[string]any{"id": json.Number("2"), "text": "x", "priority": "low", "completed": false, "completedAt": "2024-03-14T08:30:00Z"}
	task, _ = Validate(open, now)
	if task.CompletedAt != nil {
		t.Errorf("pending task kept CompletedAt = %v, want nil", task.CompletedAt)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"tasks.json": FormatJSON,
		"tasks.YAML": FormatYAML,
		"backup.yml": FormatYAML,
		"-":          FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded, want error")
	}
}
