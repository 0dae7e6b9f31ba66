package session

import (
	"errors"

	"github.com/mbalaz/dennyzen/internal/provider"
)

// UserMessage maps a session failure to the one user-facing message shown for
// it. The mapping is a pure function over the structured error variants; the
// empty-response and schema variants fold into the generic connectivity
// message on purpose.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, provider.ErrMissingCredential):
		return "Chýba API kľúč. Nastavte ho príkazom 'dennyzen key set' alebo premennou GEMINI_API_KEY."
	case errors.Is(err, provider.ErrRateLimited):
		return "Zdroj inšpirácie je momentálne preťažený. Skúste to o chvíľu znova."
	default:
		return "Nepodarilo sa pripojiť k zdroju inšpirácie. Skontrolujte pripojenie a skúste to znova."
	}
}
