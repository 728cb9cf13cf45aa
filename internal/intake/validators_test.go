package intake_test

import (
	"testing"
	"time"

	"github.com/Rrens/reservasi-bot/internal/intake"
	"github.com/stretchr/testify/assert"
)

func TestIsValidGuestCount(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"20", true},
		{"4 orang", true},
		{"untuk 12 pax", true},
		{"0", false},
		{"21", false},
		{"empat", false},
		{"", false},
		{"1000", false},
		{"-1", false},
		{"-5 orang", false},
		{"2,5", false},
		{"1.000", false},
		{"2.5 orang", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, intake.IsValidGuestCount(tt.input))
		})
	}
}

func TestParseGuestCount(t *testing.T) {
	n, ok := intake.ParseGuestCount("4 orang")
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"10:00", "10:00", true},
		{"22:00", "22:00", true},
		{"19:00", "19:00", true},
		{"19.30", "19:30", true},
		{"jam 19", "19:00", true},
		{"pukul 7 malam", "19:00", true},
		{"9:00", "", false},
		{"23:00", "", false},
		{"19:75", "", false},
		{"nanti malam", "", false},
		{"12 malam", "", false},
		{"12 siang", "12:00", true},
		{"12 pm", "12:00", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := intake.ParseTime(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, intake.IsValidTime(tt.input))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"081234567890", true},
		{"6281234567890", true},
		{"+6281234567890", true},
		{"0812-3456-7890", true},
		{"0812 3456 7890", true},
		{"1234567", false},
		{"071234567890", false},
		{"0812345", false},
		{"08123456789012345", false},
		{"nomor saya", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, intake.IsValidPhone(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	phone, ok := intake.NormalizePhone(" 0812-3456-7890 ")
	assert.True(t, ok)
	assert.Equal(t, "081234567890", phone)
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"ya", true},
		{"Iya, sudah benar", true},
		{"betul", true},
		{"OK", true},
		{"oke deh", true},
		{"tidak", false},
		{"tidak benar", false},
		{"bukan, salah", false},
		{"nanti saja", false},
		{"yakin", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, intake.IsAffirmative(tt.input))
		})
	}
}

func TestIsFutureDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, time.January, 10, 20, 0, 0, 0, loc)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"indonesian month", "15 Maret 2026", "2026-03-15"},
		{"with weekday", "Minggu, 15 Maret 2026", "2026-03-15"},
		{"abbreviated month", "15 mar 2026", "2026-03-15"},
		{"english month", "15 March 2026", "2026-03-15"},
		{"slashes", "15/03/2026", "2026-03-15"},
		{"dashes", "15-03-2026", "2026-03-15"},
		{"two digit year", "15/03/26", "2026-03-15"},
		{"iso", "2026-03-15", "2026-03-15"},
		{"tomorrow", "besok", "2026-01-11"},
		{"day after tomorrow", "lusa malam", "2026-01-12"},
		{"no year later this year", "20 Januari", "2026-01-20"},
		{"no year rolls over", "5 Januari", "2027-01-05"},
		{"sentence", "saya mau tanggal 1 februari ya", "2026-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := intake.ParseDate(tt.input, now)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.True(t, intake.IsFutureDate(tt.input, now))
		})
	}
}

func TestIsFutureDate_Rejects(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, time.January, 10, 8, 0, 0, 0, loc)

	inputs := []string{
		"",
		"kapan saja",
		"hari ini",
		"10 Januari 2026",
		"9 Januari 2026",
		"1 Desember 2025",
		"31 April 2026",
		"32/01/2026",
		"15/13/2026",
		"ab",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.False(t, intake.IsFutureDate(input, now))
		})
	}
}

func TestParseCalendarDate_AcceptsPastDates(t *testing.T) {
	now := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)

	d, ok := intake.ParseCalendarDate("1 Desember 2025", now)
	assert.True(t, ok)
	assert.Equal(t, "2025-12-01", d.Format("2006-01-02"))

	_, ok = intake.ParseCalendarDate("halo", now)
	assert.False(t, ok)
}
