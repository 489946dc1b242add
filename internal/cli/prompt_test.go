package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"zakat/internal/core"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompterLine(t *testing.T) {
	p, out := newTestPrompter("  hello world  \n")

	got, err := p.Line("name: ")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Line() = %q, want %q", got, "hello world")
	}
	if !strings.Contains(out.String(), "name: ") {
		t.Errorf("prompt not written, got %q", out.String())
	}
}

func TestPrompterLineEOF(t *testing.T) {
	p, _ := newTestPrompter("")

	if _, err := p.Line("name: "); !errors.Is(err, io.EOF) {
		t.Errorf("Line() error = %v, want io.EOF", err)
	}
}

func TestPrompterDateRepromptsOnInvalid(t *testing.T) {
	p, out := newTestPrompter("20-01-2024\nnot a date\n2024-01-20\n")

	got, err := p.Date("date: ")
	if err != nil {
		t.Fatalf("Date() error = %v", err)
	}
	if got.Format(core.DateLayout) != "2024-01-20" {
		t.Errorf("Date() = %s, want 2024-01-20", got.Format(core.DateLayout))
	}
	if n := strings.Count(out.String(), "Invalid date"); n != 2 {
		t.Errorf("expected 2 re-prompts, got %d", n)
	}
}

func TestPrompterID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"valid first try", "5\n", 5},
		{"skips zero", "0\n3\n", 3},
		{"skips negative", "-1\n7\n", 7},
		{"skips text", "abc\n12\n", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.ID("id: ")
			if err != nil {
				t.Fatalf("ID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrompterDecimal(t *testing.T) {
	p, _ := newTestPrompter("nope\n2,5\n")

	got, err := p.Decimal("qty: ", core.ParseQuantity)
	if err != nil {
		t.Fatalf("Decimal() error = %v", err)
	}
	if got.String() != "2.5" {
		t.Errorf("Decimal() = %s, want 2.5", got)
	}
}

func TestPrompterDecimalRejectsNonPositiveQuantity(t *testing.T) {
	p, _ := newTestPrompter("0\n-3\n10\n")

	got, err := p.Decimal("qty: ", core.ParseQuantity)
	if err != nil {
		t.Fatalf("Decimal() error = %v", err)
	}
	if got.String() != "10" {
		t.Errorf("Decimal() = %s, want 10", got)
	}
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		p, _ := newTestPrompter(tt.input)
		got, err := p.Confirm("sure? ")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
