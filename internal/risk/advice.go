package risk

// adviceTemplate carries the display title and standing advice for one
// risk label.
type adviceTemplate struct {
	title  string
	advice []string
}

var adviceTemplates = map[string]adviceTemplate{
	"asthma": {
		title: "Asthma exacerbation risk",
		advice: []string{
			"Avoid outdoor strenuous exercise.",
			"Keep windows closed; increase indoor filtration if possible.",
			"Use prescribed inhaler as advised; consult physician if symptoms worsen.",
		},
	},
	"copd": {
		title: "COPD exacerbation risk",
		advice: []string{
			"Avoid outdoor exposure; use face mask outdoors.",
			"Ensure medication adherence; seek medical advice for breathing difficulty.",
		},
	},
	"resp_inf": {
		title: "Respiratory infection risk",
		advice: []string{
			"Reduce exposure to polluted air; maintain hydration and hygiene.",
			"If you have symptoms, consult a doctor.",
		},
	},
	"cardio": {
		title: "Cardiovascular risk",
		advice: []string{
			"Avoid heavy exertion outdoors; those with heart disease should be cautious.",
			"Consult your cardiologist if you have chest pain or unusual breathlessness.",
		},
	},
	"allergy": {
		title: "Allergic reaction risk",
		advice: []string{
			"Consider antihistamines if you have allergies; keep indoor air clean.",
			"Avoid outdoor activities during high pollutant episodes.",
		},
	},
}

// TitleFor returns the display title for a risk label, falling back to
// the label itself for unknown labels.
func TitleFor(label string) string {
	if t, ok := adviceTemplates[label]; ok {
		return t.title
	}
	return label
}

// AdviceFor returns the standing advice for a risk label, empty for
// unknown labels.
func AdviceFor(label string) []string {
	return adviceTemplates[label].advice
}
