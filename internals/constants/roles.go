package constants

import "fmt"

// Template pesan error role
const (
	ErrOnlyTutorsCanAccess = "❌ Hanya tutor atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

// Nama role yang dikenali dari klaim token
const (
	RoleAdmin = "admin"
	RoleTutor = "tutor"
)

func RoleErrorTutor(feature string) string {
	return fmt.Sprintf(ErrOnlyTutorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
