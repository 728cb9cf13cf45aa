package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// BuildSystemPrompt creates the instruction prompt for the free-form
// conversation mode
func BuildSystemPrompt(restaurant string, openingHour, closingHour, minGuests, maxGuests int) string {
	return fmt.Sprintf(`Anda adalah asisten virtual untuk %[1]s yang bertugas membantu pelanggan membuat reservasi meja. Anda harus bersikap ramah, sopan, dan profesional dalam Bahasa Indonesia.

PERAN ANDA:
- Agen reservasi restoran yang membantu pelanggan memesan meja
- Mengumpulkan informasi reservasi secara lengkap dan akurat

ATURAN WAJIB:
1. Tanyakan informasi secara BERURUTAN, satu per satu
2. Jangan lanjut ke pertanyaan berikutnya sebelum pertanyaan sebelumnya dijawab dengan lengkap
3. Jika pelanggan memberikan informasi yang tidak valid, minta dengan sopan informasi yang benar
4. Jangan membuat asumsi, selalu minta konfirmasi jika ada yang tidak jelas
5. Jangan pernah membuat kode reservasi sendiri; kode diberikan oleh sistem

INFORMASI YANG HARUS DIKUMPULKAN (BERURUTAN):
1. Tanggal dan hari reservasi (harus tanggal di masa depan)
2. Jam reservasi (jam operasional: %02[2]d.00 - %02[3]d.00 WIB)
3. Jumlah orang (kapasitas: %[4]d-%[5]d orang)
4. Nama pemesan
5. Nomor kontak (format 08xx atau 62xx)

ALUR PERCAKAPAN:
1. Sambut pelanggan dengan ramah
2. Tanyakan setiap informasi di atas, tunggu jawaban, lalu validasi
3. Buat ringkasan semua informasi dan minta konfirmasi
4. Jika disetujui, ucapkan terima kasih

CONTOH SAPAAN AWAL:
"Selamat datang di %[1]s! 👋
Saya siap membantu Anda membuat reservasi meja.

Untuk memulai, kapan Anda ingin melakukan reservasi? Silakan sebutkan tanggal dan harinya."

OUTPUT FORMAT:
- Gunakan bahasa yang natural dan conversational
- Berikan respons yang singkat namun jelas`, restaurant, openingHour, closingHour, minGuests, maxGuests)
}

// BuildRephrasePrompt creates the instruction used to reword a fixed reply
func BuildRephrasePrompt(restaurant string) string {
	return fmt.Sprintf(`Anda adalah asisten reservasi %s. Tulis ulang pesan sistem berikut agar terdengar ramah dan natural dalam Bahasa Indonesia.

Aturan:
1. Pertahankan SEMUA fakta persis seperti aslinya: tanggal, jam, angka, nama, nomor telepon, dan kode reservasi
2. Jangan menambah pertanyaan atau informasi baru
3. Jawab HANYA dengan pesan hasil tulis ulang, tanpa penjelasan`, restaurant)
}

// BuildRephraseMessage wraps the literal line for the rephrase request
func BuildRephraseMessage(line string) string {
	return "Pesan sistem:\n" + line
}

var factPattern = regexp.MustCompile(`[+\w]*\d[\w:.]*`)

// MissingFacts returns the tokens containing digits in original that do not
// appear in rewritten. A rewrite that drops a date, time or code is unusable.
func MissingFacts(original, rewritten string) []string {
	var missing []string
	for _, fact := range factPattern.FindAllString(original, -1) {
		fact = strings.TrimRight(fact, ".:")
		if !strings.Contains(rewritten, fact) {
			missing = append(missing, fact)
		}
	}
	return missing
}

// CleanReply strips wrapping the model sometimes adds around a reply
func CleanReply(content string) string {
	content = strings.TrimSpace(content)
	if inner := extractFromCodeBlock(content, "```"); inner != "" {
		content = inner
	}
	if len(content) >= 2 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = strings.TrimSpace(content[1 : len(content)-1])
	}
	return content
}

func extractFromCodeBlock(content, marker string) string {
	startIdx := strings.Index(content, marker)
	if startIdx == -1 {
		return ""
	}

	contentStart := startIdx + len(marker)
	// skip an optional language tag line
	if nl := strings.IndexByte(content[contentStart:], '\n'); nl != -1 {
		contentStart += nl + 1
	}

	endIdx := strings.Index(content[contentStart:], marker)
	if endIdx == -1 {
		return ""
	}

	return strings.TrimSpace(content[contentStart : contentStart+endIdx])
}
