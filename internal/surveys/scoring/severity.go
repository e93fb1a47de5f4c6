package scoring

// Severity is one of five ordered health tiers, worst first.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityConcerning
	SeverityModerate
	SeverityGood
	SeverityVeryGood
)

var (
	percentageCutoffs = [...]float64{20, 40, 60, 80}
	iief5Cutoffs      = [...]int{8, 12, 17, 22}
)

var severityNames = [...]string{"critical", "concerning", "moderate", "good", "very_good"}

var (
	percentageLabels = [...]string{
		"Kritisch",
		"Bedenklich",
		"Mäßig",
		"Gut",
		"Sehr gut",
	}
	iief5Labels = [...]string{
		"Schwere erektile Dysfunktion",
		"Moderate erektile Dysfunktion",
		"Leicht bis moderate erektile Dysfunktion",
		"Leichte erektile Dysfunktion",
		"Keine erektile Dysfunktion",
	}
)

func (s Severity) String() string {
	if s < SeverityCritical || s > SeverityVeryGood {
		return "unknown"
	}
	return severityNames[s]
}

// Classify maps a section total to its severity. IIEF-5 sections use the
// absolute score bands; every other section uses percentage-of-max tiers.
// Each band is inclusive of its lower bound.
func Classify(score, maxScore int, iief5 bool) Severity {
	if iief5 {
		return classifyIIEF5(score)
	}
	return ClassifyPercentage(Percentage(score, maxScore))
}

// ClassifyPercentage maps a percentage to its tier. NaN compares false against
// every cutoff and therefore lands in SeverityVeryGood.
func ClassifyPercentage(percentage float64) Severity {
	for i, cutoff := range percentageCutoffs {
		if percentage < cutoff {
			return Severity(i)
		}
	}
	return SeverityVeryGood
}

func classifyIIEF5(score int) Severity {
	for i, cutoff := range iief5Cutoffs {
		if score < cutoff {
			return Severity(i)
		}
	}
	return SeverityVeryGood
}

// Interpretation returns the canonical German label for a severity.
func Interpretation(severity Severity, iief5 bool) string {
	if severity < SeverityCritical || severity > SeverityVeryGood {
		return ""
	}
	if iief5 {
		return iief5Labels[severity]
	}
	return percentageLabels[severity]
}

// Percentage returns score as a percentage of maxScore. A zero maxScore is
// not guarded and yields NaN or ±Inf.
func Percentage(score, maxScore int) float64 {
	return float64(score) / float64(maxScore) * 100
}
