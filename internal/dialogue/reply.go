package dialogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/intake"
)

// Intent names what a reply is meant to say, independent of its wording
type Intent string

const (
	IntentWelcome         Intent = "welcome"
	IntentAskTime         Intent = "ask_time"
	IntentAskGuests       Intent = "ask_guests"
	IntentAskName         Intent = "ask_name"
	IntentAskContact      Intent = "ask_contact"
	IntentSummary         Intent = "summary"
	IntentInvalidDate     Intent = "invalid_date"
	IntentInvalidTime     Intent = "invalid_time"
	IntentInvalidGuests   Intent = "invalid_guests"
	IntentInvalidName     Intent = "invalid_name"
	IntentInvalidPhone    Intent = "invalid_phone"
	IntentConfirmed       Intent = "confirmed"
	IntentRestart         Intent = "restart"
	IntentAlreadyComplete Intent = "already_complete"
	IntentFreeform        Intent = "freeform"
)

// Reply is the directive produced by one turn. Text is always a complete
// line that can be shown as is; when Generated is false a renderer may
// rephrase it.
type Reply struct {
	Intent          Intent
	Text            string
	Generated       bool
	ReservationCode string
}

// IsError reports whether the reply asks the user to correct an answer
func (r Reply) IsError() bool {
	switch r.Intent {
	case IntentInvalidDate, IntentInvalidTime, IntentInvalidGuests, IntentInvalidName, IntentInvalidPhone:
		return true
	}
	return false
}

var (
	weekdaysID = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	monthsID   = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli",
		"Agustus", "September", "Oktober", "November", "Desember"}
)

// FormatDate renders a YYYY-MM-DD date as "Minggu, 15 Maret 2026"
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d %s %d", weekdaysID[t.Weekday()], t.Day(), monthsID[t.Month()], t.Year())
}

// Lines holds the literal wording of every guided reply
type Lines struct {
	Restaurant string
}

func (l Lines) Welcome() string {
	return fmt.Sprintf("Selamat datang di %s! 👋\nSaya siap membantu Anda membuat reservasi meja.\n\n"+
		"Untuk memulai, kapan Anda ingin melakukan reservasi? Silakan sebutkan tanggal dan harinya.", l.Restaurant)
}

func (l Lines) AskTime(date string) string {
	return fmt.Sprintf("Baik, %s. Jam berapa Anda ingin datang? Kami buka pukul %02d.00 - %02d.00 WIB.",
		FormatDate(date), intake.OpeningHour, intake.ClosingHour)
}

func (l Lines) AskGuests(clock string) string {
	return fmt.Sprintf("Pukul %s, dicatat. Untuk berapa orang reservasinya? (%d-%d orang)",
		clock, intake.MinGuests, intake.MaxGuests)
}

func (l Lines) AskName(guests int) string {
	return fmt.Sprintf("Meja untuk %d orang. Atas nama siapa reservasi ini?", guests)
}

func (l Lines) AskContact(name string) string {
	return fmt.Sprintf("Terima kasih, %s. Nomor telepon yang bisa dihubungi? (contoh: 081234567890)", name)
}

func (l Lines) Summary(c domain.Collected) string {
	var b strings.Builder
	b.WriteString("Berikut ringkasan reservasi Anda:\n")
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", FormatDate(c.Date))
	fmt.Fprintf(&b, "🕐 Jam: %s WIB\n", c.Time)
	fmt.Fprintf(&b, "👥 Jumlah orang: %d\n", c.GuestCount)
	fmt.Fprintf(&b, "👤 Nama: %s\n", c.CustomerName)
	fmt.Fprintf(&b, "📞 Kontak: %s\n\n", c.Phone)
	b.WriteString("Apakah data di atas sudah benar? Balas \"ya\" untuk konfirmasi.")
	return b.String()
}

func (l Lines) InvalidDate() string {
	return "Maaf, tanggal tersebut tidak dapat kami proses. Mohon sebutkan tanggal di masa depan, " +
		"misalnya \"15 Maret 2026\" atau \"besok\"."
}

func (l Lines) InvalidTime() string {
	return fmt.Sprintf("Maaf, jam operasional kami pukul %02d.00 - %02d.00 WIB. Mohon pilih jam di rentang tersebut, misalnya \"19:00\".",
		intake.OpeningHour, intake.ClosingHour)
}

func (l Lines) InvalidGuests() string {
	return fmt.Sprintf("Maaf, jumlah tamu harus berupa angka antara %d sampai %d orang.", intake.MinGuests, intake.MaxGuests)
}

func (l Lines) InvalidName() string {
	return "Mohon sebutkan nama pemesan."
}

func (l Lines) InvalidPhone() string {
	return "Maaf, nomor telepon tidak valid. Gunakan format 08xxxxxxxxxx atau 62xxxxxxxxxxx."
}

func (l Lines) Confirmed(code string) string {
	return fmt.Sprintf("Reservasi Anda sudah kami konfirmasi! 🎉\n\n✅ Kode Reservasi Anda: %s\n\n"+
		"Simpan kode ini sebagai bukti reservasi. Terima kasih!", code)
}

func (l Lines) Restart() string {
	return "Baik, mari kita ulangi dari awal. Kapan Anda ingin melakukan reservasi? Silakan sebutkan tanggal dan harinya."
}

func (l Lines) AlreadyComplete(code string) string {
	return fmt.Sprintf("Reservasi Anda sudah tercatat dengan kode %s. Terima kasih!", code)
}

// CodeFooter is appended to generated confirmation replies so the code is
// always present verbatim
func (l Lines) CodeFooter(code string) string {
	return fmt.Sprintf("\n\n✅ Kode Reservasi Anda: %s\n\nSimpan kode ini sebagai bukti reservasi. Terima kasih!", code)
}
