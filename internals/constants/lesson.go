package constants

// Jenis kelas menentukan field referensi siswa mana yang dipakai.
const (
	ClassKindOneToOne = "one_to_one" // satu siswa (ClassStudentID)
	ClassKindGroup    = "group"      // banyak siswa (ClassStudentIDs, dibatasi kapasitas)
	ClassKindDemo     = "demo"       // satu siswa, kelas percobaan
)

// Status lifecycle kelas.
const (
	ClassStatusScheduled   = "scheduled"
	ClassStatusOngoing     = "ongoing"
	ClassStatusCompleted   = "completed"
	ClassStatusCancelled   = "cancelled"
	ClassStatusRescheduled = "rescheduled" // penanda informasional; diperlakukan sama dengan scheduled
)

// Hasil penyelesaian kelas.
const (
	CompletionOutcomeCompleted  = "completed"
	CompletionOutcomeIncomplete = "incomplete"
	CompletionOutcomeNoShow     = "no_show"
)

// Metode penyelesaian kelas.
const (
	CompletionMethodAuto     = "auto"
	CompletionMethodManual   = "manual"
	CompletionMethodOverride = "override"
)

// Status review video rekaman kelas.
const (
	VideoReviewNone    = ""
	VideoReviewPending = "pending_review"
)

// ActiveClassStatuses: status yang dihitung saat deteksi bentrok jadwal.
// Rescheduled dianggap scheduled (re-entry, bukan status terminal).
var ActiveClassStatuses = []string{
	ClassStatusScheduled,
	ClassStatusOngoing,
	ClassStatusRescheduled,
}

// IsSchedulableStatus: status yang masih boleh ditransisikan dari "scheduled".
func IsSchedulableStatus(status string) bool {
	return status == ClassStatusScheduled || status == ClassStatusRescheduled
}
