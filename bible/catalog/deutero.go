package catalog

import "strings"

// Deutero is a deuterocanonical book. These are not part of the default
// translation; the robot quotes them from the KJV using Code as the API
// book id.
type Deutero struct {
	Code        string
	Description string
}

// DeuteroTranslation is the code of the translation that carries the
// deuterocanonical books.
const DeuteroTranslation = "KJV"

var deuterocanonical = []Deutero{
	{"1ES", "Trzecia Księga Ezdrasza"},
	{"2ES", "Czwarta Księga Ezdrasza"},
	{"TOB", "Księga Tobiasza"},
	{"JDT", "Księga Judyty"},
	{"SIR", "Księga Syracydesa (Eklezjastyka)"},
	{"BAR", "Barucha"},
	{"ESG", "Greckie rozdziały księgi Estery"},
	{"WIS", "Księga mądrości (mądrości Salomona)"},
	{"MAN", "Modlitwa Manassesa (Rozszerzenie 2 Kronik 33, 11)"},
	{"S3Y", "Greckie fragmenty księgi Daniela (pieśń Azariasza i pieśń trojga z pieca, koniec 3 rozdziału)"},
	{"SUS", "Greckie fragmenty księgi Daniela (Historia Zuzanny, rozdział 13)"},
	{"BEL", "Greckie fragmenty księgi Daniela (Zniszczenie Bala i smoka/węża, rozdział 14)"},
	{"1MA", "Pierwsza Machabejska"},
	{"2MA", "Druga Machabejska"},
}

// Deuterocanonical returns the 14 deuterocanonical books in display order.
func Deuterocanonical() []Deutero {
	out := make([]Deutero, len(deuterocanonical))
	copy(out, deuterocanonical)
	return out
}

// LookupDeutero matches code against the deuterocanonical codes, ignoring
// case.
func LookupDeutero(code string) (Deutero, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, d := range deuterocanonical {
		if d.Code == code {
			return d, true
		}
	}
	return Deutero{}, false
}
