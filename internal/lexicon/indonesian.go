package lexicon

// Default returns the built-in Indonesian vocabulary (with a small English
// overlap set) used by the campus knowledge assistant.
func Default() *Lexicon {
	return New(defaultStopwords, defaultImportantTerms, defaultSynonyms, defaultAliases)
}

// defaultStopwords covers interrogatives, auxiliaries, prepositions,
// conjunctions, pronouns, particles, and common English filler words.
var defaultStopwords = []string{
	// Interrogatives
	"apa", "apakah", "siapa", "siapakah", "kapan", "kapankah", "dimana", "dimanakah",
	"kemana", "kemanakah", "bagaimana", "gimana", "mengapa", "kenapa", "berapa",
	"mana", "what", "who", "when", "where", "why", "how", "which",

	// Auxiliaries
	"adalah", "merupakan", "yaitu", "ialah", "yakni", "seperti",
	"akan", "sudah", "telah", "sedang", "belum", "pernah", "masih",
	"bisa", "dapat", "boleh", "harus", "wajib", "perlu", "mau", "ingin",

	// Prepositions
	"di", "ke", "dari", "pada", "untuk", "bagi", "dengan", "tanpa",
	"oleh", "tentang", "mengenai", "terhadap", "antara", "hingga", "sampai",
	"sejak", "selama", "sebelum", "sesudah", "setelah", "ketika", "saat",

	// Conjunctions
	"dan", "atau", "serta", "tetapi", "tapi", "namun", "melainkan",
	"karena", "sebab", "jika", "bila", "kalau", "apabila", "supaya", "agar",

	// Pronouns
	"saya", "aku", "kamu", "kau", "anda", "dia", "ia", "beliau",
	"kami", "kita", "mereka", "ini", "itu", "tersebut", "nya",

	// Particles and common words
	"ya", "dong", "deh", "sih", "lah", "kah", "pun", "kok",
	"tidak", "nggak", "ngga", "gak", "ga", "tak", "bukan", "jangan",
	"sangat", "sekali", "banget", "amat", "paling", "lebih", "kurang",
	"semua", "seluruh", "setiap", "tiap", "beberapa", "banyak", "sedikit",
	"ada", "terdapat", "punya", "memiliki",
	"jadi", "menjadi", "sebagai", "sebuah", "suatu", "satu",
	"tolong", "mohon", "coba", "kasih", "tau", "tahu",
	"aja", "saja", "doang", "cuma", "hanya",
	"the", "a", "an", "is", "are", "was", "were", "be",
	"have", "has", "had", "do", "does", "did",
	"in", "on", "at", "by", "for", "with", "about",
	"to", "from", "up", "down", "out", "off",
}

var defaultSynonyms = []SynonymGroup{
	{Key: "daftar", Synonyms: []string{"pendaftaran", "registrasi", "mendaftar", "masuk"}},
	{Key: "pendaftaran", Synonyms: []string{"daftar", "registrasi", "masuk", "mendaftar"}},
	{Key: "biaya", Synonyms: []string{"harga", "bayar", "uang", "tarif", "ukt", "spp", "pembayaran"}},
	{Key: "kuliah", Synonyms: []string{"perkuliahan", "belajar", "kelas", "studi", "kampus"}},
	{Key: "jalur", Synonyms: []string{"cara", "metode", "rute", "jalan"}},
	{Key: "masuk", Synonyms: []string{"penerimaan", "lolos", "diterima", "daftar"}},
	{Key: "snbp", Synonyms: []string{"snmptn", "undangan", "prestasi", "rapor"}},
	{Key: "snbt", Synonyms: []string{"sbmptn", "ujian", "tes", "test"}},
	{Key: "fakultas", Synonyms: []string{"fak", "jurusan", "prodi", "program studi", "departemen"}},
	{Key: "mahasiswa", Synonyms: []string{"mhs", "mahasiswi", "siswa", "murid", "student"}},
	{Key: "beasiswa", Synonyms: []string{"scholarship", "bantuan"}},
	{Key: "wisuda", Synonyms: []string{"graduation", "lulus", "kelulusan"}},
	{Key: "jadwal", Synonyms: []string{"schedule", "waktu", "tanggal", "jam"}},
	{Key: "lokasi", Synonyms: []string{"tempat", "alamat", "location"}},
	{Key: "ugm", Synonyms: []string{"universitas gadjah mada", "gadjah mada", "gm", "gajahmada"}},
	{Key: "karismatif", Synonyms: []string{"karisma", "karis"}},
	{Key: "syarat", Synonyms: []string{"persyaratan", "ketentuan", "kondisi"}},
	{Key: "info", Synonyms: []string{"informasi", "keterangan", "detail"}},
	{Key: "klaster", Synonyms: []string{"cluster", "rumpun", "kelompok"}},
	{Key: "teknik", Synonyms: []string{"engineering", "ft"}},
	{Key: "departemen", Synonyms: []string{"dept", "jurusan", "prodi"}},
}

// defaultImportantTerms are domain entities that receive amplified scoring.
var defaultImportantTerms = []string{
	"ugm", "snbp", "snbt", "karismatif", "2024", "2025", "2026",
	"fakultas", "jurusan", "prodi", "beasiswa", "wisuda",
	"klaster", "teknik", "saintek", "soshum", "kedokteran", "hukum",
	"ekonomi", "mipa", "pertanian", "psikologi", "filsafat",
	"departemen", "pendaftaran", "biaya", "ukt", "spp",
}

var defaultAliases = []Alias{
	{Phrase: "universitas gadjah mada", Canonical: "ugm"},
	{Phrase: "gadjah mada", Canonical: "ugm"},
}
