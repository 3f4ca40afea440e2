package core

import (
	"testing"
	"time"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1200", 1200, true},
		{"$1,200.50", 1200.5, true},
		{"(123.45)", -123.45, true},
		{"€99", 99, true},
		{"-7", -7, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"twelve", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-03-10", "2024/03/10", "3/10/2024", "03/10/2024", "Mar 10, 2024", "10 Mar 2024"} {
		got, ok := ParseDate(in)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}

	if _, ok := ParseDate("next tuesday"); ok {
		t.Error("ParseDate(next tuesday) should fail")
	}

	got, ok := ParseDate("1/2/99")
	if !ok || got.Year() != 1999 {
		t.Errorf("ParseDate(1/2/99) = %v, want year 1999", got)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"yes", true, true},
		{"T", true, true},
		{"1", true, true},
		{"no", false, true},
		{" false ", false, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got, ok := ParseBool(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseBool(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCoerceRows(t *testing.T) {
	cols := []datatable.Column{
		{Key: "name", Type: datatable.FieldText},
		{Key: "amount", Type: datatable.FieldNumeric},
		{Key: "closes", Type: datatable.FieldDate},
		{Key: "active", Type: datatable.FieldBool},
	}
	in := []datatable.Row{{
		"id":     "abc",
		"name":   "  Acme  ",
		"amount": "$1,500",
		"closes": "2024-01-15",
		"active": int64(1),
	}, {
		"name":   nil,
		"amount": "n/a",
		"active": "no",
	}}

	out := CoerceRows(in, cols)

	if out[0]["name"] != "Acme" {
		t.Errorf("name = %q, want trimmed", out[0]["name"])
	}
	if out[0]["amount"] != 1500.0 {
		t.Errorf("amount = %v, want 1500", out[0]["amount"])
	}
	if d, ok := out[0]["closes"].(time.Time); !ok || d.Day() != 15 {
		t.Errorf("closes = %v, want time.Time", out[0]["closes"])
	}
	if out[0]["active"] != true {
		t.Errorf("active = %v, want true", out[0]["active"])
	}
	if out[0]["id"] != "abc" {
		t.Errorf("id = %v, columns outside the registry must be kept", out[0]["id"])
	}

	if out[1]["name"] != nil {
		t.Errorf("nil name = %v, want nil", out[1]["name"])
	}
	if out[1]["amount"] != "n/a" {
		t.Errorf("unparsable amount = %v, want original", out[1]["amount"])
	}
	if out[1]["active"] != false {
		t.Errorf("active = %v, want false", out[1]["active"])
	}

	if in[0]["amount"] != "$1,500" {
		t.Error("CoerceRows modified its input")
	}
}
