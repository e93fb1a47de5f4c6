package scoring

// SectionKey identifies a questionnaire section. The set B..J is closed.
type SectionKey string

const (
	SectionB SectionKey = "B"
	SectionC SectionKey = "C"
	SectionD SectionKey = "D"
	SectionE SectionKey = "E"
	SectionF SectionKey = "F"
	SectionG SectionKey = "G"
	SectionH SectionKey = "H"
	SectionI SectionKey = "I"
	SectionJ SectionKey = "J"
)

// likertPoints is the number of points on every question's rating scale.
const likertPoints = 5

// Section is the static definition of a questionnaire section.
type Section struct {
	Key           SectionKey
	Name          string
	QuestionCount int
	// Inverse sections ask about the frequency of complaints, so ratings are
	// flipped before summing and a higher total always means healthier.
	Inverse bool
}

// MaxScore returns the highest attainable total for the section.
func (s Section) MaxScore() int {
	return s.QuestionCount * likertPoints
}

// IIEF5 reports whether the section is interpreted with the IIEF-5 erectile
// function bands instead of percentage tiers.
func (s Section) IIEF5() bool {
	return s.Key.IIEF5()
}

// IIEF5 reports whether the key names the sexual health section.
func (k SectionKey) IIEF5() bool {
	return k == SectionC
}

// Section C is configured with six questions although the clinical IIEF-5
// has five; the absolute band thresholds are applied unchanged.
var sections = [...]Section{
	{Key: SectionB, Name: "Urogenitalsystem", QuestionCount: 7, Inverse: true},
	{Key: SectionC, Name: "Sexuelle Gesundheit", QuestionCount: 6, Inverse: false},
	{Key: SectionD, Name: "Hormonelle Gesundheit", QuestionCount: 12, Inverse: true},
	{Key: SectionE, Name: "Herz-Kreislauf", QuestionCount: 6, Inverse: true},
	{Key: SectionF, Name: "Stoffwechsel", QuestionCount: 6, Inverse: true},
	{Key: SectionG, Name: "Verdauung", QuestionCount: 5, Inverse: true},
	{Key: SectionH, Name: "Bewegungsapparat", QuestionCount: 5, Inverse: true},
	{Key: SectionI, Name: "Psyche", QuestionCount: 6, Inverse: true},
	{Key: SectionJ, Name: "Lebensqualität", QuestionCount: 5, Inverse: true},
}

// Sections returns the section definitions ordered by key.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections[:])
	return out
}

// Lookup returns the definition for key.
func Lookup(key SectionKey) (Section, bool) {
	for _, s := range sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}
