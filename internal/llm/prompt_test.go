package llm_test

import (
	"strings"
	"testing"

	"github.com/Rrens/reservasi-bot/internal/llm"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := llm.BuildSystemPrompt("Restoran WAJIB", 10, 22, 1, 20)

	mustContain := []string{
		"Restoran WAJIB",
		"10.00 - 22.00 WIB",
		"1-20 orang",
		"BERURUTAN",
		"konfirmasi",
		"Selamat datang di Restoran WAJIB!",
	}

	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt should contain %q", s)
		}
	}
}

func TestMissingFacts(t *testing.T) {
	original := "Kode Reservasi Anda: RES12345678901 untuk 4 orang, pukul 19:00, Minggu, 15 Maret 2026."

	if missing := llm.MissingFacts(original, "Siap! Reservasi RES12345678901 untuk 4 orang pada 15 Maret 2026 jam 19:00."); len(missing) != 0 {
		t.Errorf("MissingFacts() = %v, want none", missing)
	}

	missing := llm.MissingFacts(original, "Siap! Reservasi untuk 4 orang pada 15 Maret 2026 jam 19:00.")
	if len(missing) != 1 || missing[0] != "RES12345678901" {
		t.Errorf("MissingFacts() = %v, want [RES12345678901]", missing)
	}

	if missing := llm.MissingFacts("Atas nama siapa reservasi ini?", "Boleh tahu namanya?"); len(missing) != 0 {
		t.Errorf("MissingFacts() = %v, want none for a line without facts", missing)
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			"plain text",
			"Jam berapa Anda ingin datang?",
			"Jam berapa Anda ingin datang?",
		},
		{
			"whitespace",
			"  Jam berapa?\n",
			"Jam berapa?",
		},
		{
			"quoted",
			`"Jam berapa?"`,
			"Jam berapa?",
		},
		{
			"code block",
			"```text\nJam berapa?\n```",
			"Jam berapa?",
		},
		{
			"unterminated code block",
			"```text\nJam berapa?",
			"```text\nJam berapa?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := llm.CleanReply(tt.content)
			if result != tt.expected {
				t.Errorf("CleanReply() = %q, want %q", result, tt.expected)
			}
		})
	}
}
