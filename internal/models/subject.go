package models

// Subject is one of the fixed subjects a class can be offered for.
type Subject string

const (
	SubjectArts              Subject = "Artes"
	SubjectBiology           Subject = "Biologia"
	SubjectScience           Subject = "Ciências"
	SubjectPhysicalEducation Subject = "Educação Física"
	SubjectPhysics           Subject = "Física"
	SubjectHistory           Subject = "História"
	SubjectMath              Subject = "Matemática"
	SubjectPortuguese        Subject = "Português"
	SubjectChemistry         Subject = "Química"
	SubjectSociology         Subject = "Sociologia"
)

var subjects = []Subject{
	SubjectArts,
	SubjectBiology,
	SubjectScience,
	SubjectPhysicalEducation,
	SubjectPhysics,
	SubjectHistory,
	SubjectMath,
	SubjectPortuguese,
	SubjectChemistry,
	SubjectSociology,
}

// Subjects returns the catalogue in display order.
func Subjects() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Valid reports whether s is part of the catalogue.
func (s Subject) Valid() bool {
	for _, known := range subjects {
		if s == known {
			return true
		}
	}
	return false
}
