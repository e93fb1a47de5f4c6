package recommendations

import "menshealth-backend/internal/surveys/scoring"

const fallbackText = "Bitte konsultieren Sie Ihren Arzt für weitere Empfehlungen."

var sectionNames = map[scoring.SectionKey]string{
	scoring.SectionB: "Urogenitalsystem",
	scoring.SectionC: "Sexuelle Gesundheit",
	scoring.SectionD: "Hormonelle Gesundheit",
	scoring.SectionE: "Herz-Kreislauf-System",
	scoring.SectionF: "Stoffwechsel",
	scoring.SectionG: "Verdauungssystem",
	scoring.SectionH: "Bewegungsapparat",
	scoring.SectionI: "Psychische Gesundheit",
	scoring.SectionJ: "Lebensqualität",
}

// SectionName returns the display name used on recommendations. Unknown keys
// are returned verbatim.
func SectionName(key scoring.SectionKey) string {
	if name, ok := sectionNames[key]; ok {
		return name
	}
	return string(key)
}

var iief5Texts = [...]string{
	scoring.SeverityCritical:   "Schwere erektile Dysfunktion festgestellt. Dringend empfohlen: Urologische Untersuchung, Hormondiagnostik (Testosteron, LH, Prolaktin), Gefäßuntersuchung. Mögliche Therapieoptionen: PDE-5-Hemmer, SKAT-Therapie, Vakuumpumpe. Lebensstilmodifikation: Gewichtsreduktion, regelmäßige Bewegung, Stressreduktion.",
	scoring.SeverityConcerning: "Moderate erektile Dysfunktion. Empfohlen: Urologische Konsultation, Hormondiagnostik, Herz-Kreislauf-Check. Therapieansätze: PDE-5-Hemmer (Sildenafil, Tadalafil), Beckenbodentraining. Lifestyle: Ausdauersport 3x/Woche, mediterrane Ernährung, Alkoholreduktion.",
	scoring.SeverityModerate:   "Leicht bis moderate erektile Dysfunktion. Empfohlen: Ärztliche Abklärung, Testosteronbestimmung. Maßnahmen: Beckenbodentraining, regelmäßige körperliche Aktivität, Stressmanagement, ausreichend Schlaf. Bei Bedarf: niedrig dosierte PDE-5-Hemmer.",
	scoring.SeverityGood:       "Leichte erektile Dysfunktion. Empfohlen: Lifestyle-Optimierung durch regelmäßigen Sport, gesunde Ernährung, Stressreduktion. Beckenbodenübungen können hilfreich sein. Bei Verschlechterung: ärztliche Konsultation.",
	scoring.SeverityVeryGood:   "Keine erektile Dysfunktion. Zur Prävention: Gesunder Lebensstil beibehalten, regelmäßige Bewegung, ausgewogene Ernährung.",
}

// sectionTexts holds, per section, the advice for the critical, concerning,
// moderate and good tiers in that order.
var sectionTexts = map[scoring.SectionKey][4]string{
	scoring.SectionB: {
		"Urogenitale Beschwerden: Dringend urologische Untersuchung empfohlen. Abklärung: PSA-Wert, Ultraschall, Urinanalyse. Mögliche Ursachen: Prostatitis, BPH, Harnwegsinfekt. Therapie je nach Diagnose.",
		"Urogenitale Symptome vorhanden: Urologische Konsultation ratsam. Untersuchungen: PSA, Uroflowmetrie, Restharnbestimmung. Präventiv: Ausreichend trinken (2L/Tag), Beckenbodentraining, regelmäßige Entleerung.",
		"Leichte urogenitale Beschwerden: Beobachten und bei Verschlechterung ärztliche Abklärung. Maßnahmen: Ausreichend Flüssigkeitszufuhr, Vermeidung von Koffein/Alkohol am Abend, Beckenbodenübungen.",
		"Urogenitale Gesundheit gut. Zur Prävention: Ausreichend trinken, regelmäßige Blasenentleerung, jährliche Vorsorge ab 45 Jahren.",
	},
	scoring.SectionD: {
		"Hormonelle Dysbalance wahrscheinlich: Dringend endokrinologische/urologische Abklärung. Labor: Testosteron (morgens), LH, FSH, Prolaktin, SHBG, Vitamin D. Therapieoptionen: Testosteronsubstitution, Lifestyle-Modifikation, Gewichtsreduktion.",
		"Hormonelle Symptome: Ärztliche Untersuchung empfohlen. Labordiagnostik: Gesamttestosteron, freies Testosteron, SHBG. Maßnahmen: Krafttraining 3x/Woche, proteinreiche Ernährung, ausreichend Schlaf (7-8h), Stressreduktion.",
		"Leichte hormonelle Auffälligkeiten: Lifestyle-Optimierung empfohlen. Krafttraining, Zink-/Vitamin-D-Supplementierung, Gewichtsmanagement, Schlafhygiene. Bei Persistenz: Hormondiagnostik.",
		"Hormonelle Balance gut. Zur Erhaltung: Regelmäßiges Krafttraining, ausgewogene Ernährung, ausreichend Schlaf, Stressmanagement.",
	},
	scoring.SectionE: {
		"Kardiovaskuläre Risikofaktoren: Dringend kardiologische Untersuchung. Diagnostik: Blutdruck, Langzeit-EKG, Belastungs-EKG, Lipidstatus, Blutzucker. Sofortmaßnahmen: Rauchstopp, Gewichtsreduktion, salzarme Ernährung.",
		"Herz-Kreislauf-Beschwerden: Ärztliche Abklärung empfohlen. Check: Blutdruck, Cholesterin, Blutzucker, EKG. Maßnahmen: Ausdauersport 150min/Woche, mediterrane Diät, Salzreduktion, Gewichtsnormalisierung.",
		"Leichte kardiovaskuläre Symptome: Lifestyle-Modifikation. Regelmäßige Bewegung, herzgesunde Ernährung (Omega-3, Vollkorn), Stressabbau, Blutdruckkontrolle. Bei Verschlechterung: ärztliche Konsultation.",
		"Herz-Kreislauf-System gut. Prävention: Regelmäßiger Ausdauersport, gesunde Ernährung, Nichtrauchen, Stressmanagement, jährlicher Check-up.",
	},
	scoring.SectionF: {
		"Metabolische Störung wahrscheinlich: Dringend internistische Abklärung. Labor: Nüchternblutzucker, HbA1c, Lipidprofil, Leberwerte, TSH. Maßnahmen: Gewichtsreduktion, Low-Carb-Ernährung, Bewegung, ggf. Metformin.",
		"Stoffwechselprobleme: Ärztliche Untersuchung ratsam. Diagnostik: Blutzucker, Insulin, Lipide, Leberwerte. Therapie: Ernährungsumstellung, Intervallfasten, regelmäßige Bewegung, Gewichtsreduktion 5-10%.",
		"Leichte Stoffwechselauffälligkeiten: Lifestyle-Änderung empfohlen. Ausgewogene Ernährung, Zuckerreduktion, regelmäßige Mahlzeiten, Bewegung 30min/Tag, ausreichend Schlaf.",
		"Stoffwechsel gut. Zur Erhaltung: Ausgewogene Ernährung, regelmäßige Bewegung, Normalgewicht halten, ausreichend Schlaf.",
	},
	scoring.SectionG: {
		"Gastrointestinale Beschwerden: Gastroenterologische Abklärung empfohlen. Diagnostik: Stuhluntersuchung, Blutbild, ggf. Endoskopie. Maßnahmen: Ernährungsprotokoll, Ausschluss Intoleranzen, Probiotika.",
		"Verdauungsprobleme: Ärztliche Konsultation ratsam. Maßnahmen: Ballaststoffreiche Ernährung, ausreichend Flüssigkeit, Probiotika, Stressreduktion, regelmäßige Mahlzeiten.",
		"Leichte Verdauungsbeschwerden: Ernährungsoptimierung. Mehr Ballaststoffe, fermentierte Lebensmittel, ausreichend Wasser, regelmäßige Bewegung, Stressmanagement.",
		"Verdauung gut. Zur Erhaltung: Ballaststoffreiche Ernährung, ausreichend Flüssigkeit, regelmäßige Bewegung, Stressabbau.",
	},
	scoring.SectionH: {
		"Muskuloskelettale Beschwerden: Orthopädische/rheumatologische Abklärung. Diagnostik: Röntgen, MRT, Entzündungsparameter. Therapie: Physiotherapie, Schmerzmanagement, ggf. Infiltrationen, Bewegungstherapie.",
		"Bewegungsapparat-Probleme: Ärztliche Untersuchung empfohlen. Maßnahmen: Physiotherapie, Krafttraining, Dehnübungen, Ergonomie-Optimierung, Gewichtsreduktion bei Übergewicht.",
		"Leichte muskuloskelettale Beschwerden: Bewegungstherapie. Regelmäßiges Krafttraining, Dehnübungen, Rückengymnastik, ergonomischer Arbeitsplatz, Vitamin-D-Supplementierung.",
		"Bewegungsapparat gut. Prävention: Regelmäßiges Kraft- und Beweglichkeitstraining, gute Haltung, ausreichend Vitamin D und Calcium.",
	},
	scoring.SectionI: {
		"Psychische Belastung: Dringend psychiatrische/psychotherapeutische Hilfe empfohlen. Diagnostik: Depression-Screening, Burnout-Test. Therapie: Psychotherapie, ggf. Medikation, Stressmanagement, soziale Unterstützung.",
		"Psychische Symptome: Ärztliche/psychologische Konsultation ratsam. Maßnahmen: Stressreduktion, Entspannungstechniken, ausreichend Schlaf, soziale Kontakte, ggf. Kurzzeittherapie.",
		"Leichte psychische Belastung: Selbstfürsorge wichtig. Stressmanagement, Achtsamkeitsübungen, regelmäßige Bewegung, ausreichend Schlaf, soziale Aktivitäten, Work-Life-Balance.",
		"Psychische Gesundheit gut. Zur Erhaltung: Stressmanagement, ausreichend Schlaf, soziale Kontakte, regelmäßige Bewegung, Hobbys.",
	},
	scoring.SectionJ: {
		"Lebensqualität stark eingeschränkt: Ganzheitliche ärztliche Betreuung empfohlen. Abklärung aller Gesundheitsbereiche, psychosoziale Unterstützung, Lifestyle-Coaching, ggf. Rehabilitation.",
		"Lebensqualität beeinträchtigt: Ärztliche Beratung sinnvoll. Ganzheitlicher Ansatz: Medizinische Abklärung, Lifestyle-Optimierung, Stressmanagement, soziale Unterstützung, Hobbys.",
		"Lebensqualität verbesserungswürdig: Ganzheitliche Optimierung. Work-Life-Balance, regelmäßige Bewegung, gesunde Ernährung, ausreichend Schlaf, soziale Kontakte, Hobbys.",
		"Lebensqualität gut. Zur Erhaltung: Ausgewogener Lebensstil, regelmäßige Bewegung, soziale Kontakte, Hobbys, Stressmanagement.",
	},
}

func sectionText(key scoring.SectionKey, severity scoring.Severity) string {
	texts, ok := sectionTexts[key]
	if !ok || severity < scoring.SeverityCritical || severity >= scoring.SeverityVeryGood {
		return fallbackText
	}
	return texts[severity]
}
