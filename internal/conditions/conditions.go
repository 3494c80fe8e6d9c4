// Package conditions maps literal disease terms in a question to direct
// fact-sheet pages on MedlinePlus and CDC. This is plain dictionary lookup,
// independent of the semantic retrieval core: it only adds convenience links
// to the response.
package conditions

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Link is one direct condition page.
type Link struct {
	Provider string `json:"provider"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// entry ties a MedlinePlus topic slug to the query phrasings that select it.
// Order matters: the first matching entry wins.
type entry struct {
	slug     string
	display  string
	synonyms []string
}

var table = []entry{
	{"flu", "Flu", []string{"flu", "influenza"}},
	{"diabetes", "Diabetes", []string{"diabetes", "diabetic"}},
	{"hypertension", "High Blood Pressure", []string{"hypertension", "high blood pressure"}},
	{"asthma", "Asthma", []string{"asthma"}},
	{"pneumonia", "Pneumonia", []string{"pneumonia"}},
	{"bronchitis", "Bronchitis", []string{"bronchitis"}},
	{"covid", "COVID-19", []string{"covid", "coronavirus"}},
	{"heartdisease", "Heart Disease", []string{"heart disease", "cardiac disease"}},
	{"heartattack", "Heart Attack", []string{"heart attack", "myocardial infarction"}},
	{"stroke", "Stroke", []string{"stroke"}},
	{"cancer", "Cancer", []string{"cancer"}},
	{"arthritis", "Arthritis", []string{"arthritis"}},
	{"depression", "Depression", []string{"depression"}},
	{"anxiety", "Anxiety", []string{"anxiety"}},
	{"migraine", "Migraine", []string{"migraine"}},
	{"allergies", "Allergies", []string{"allergies", "allergy"}},
	{"eczema", "Eczema", []string{"eczema"}},
	{"psoriasis", "Psoriasis", []string{"psoriasis"}},
	{"hepatitis", "Hepatitis", []string{"hepatitis"}},
	{"osteoporosis", "Osteoporosis", []string{"osteoporosis"}},
	{"chickenpox", "Chickenpox", []string{"chickenpox", "chicken pox", "varicella"}},
	{"measles", "Measles", []string{"measles"}},
	{"tuberculosis", "Tuberculosis", []string{"tuberculosis", "tb"}},
	{"malaria", "Malaria", []string{"malaria"}},
	{"meningitis", "Meningitis", []string{"meningitis"}},
	{"sepsis", "Sepsis", []string{"sepsis"}},
	{"fractures", "Fractures", []string{"fracture", "broken bone", "broken"}},
	{"burns", "Burns", []string{"burn", "burns"}},
	{"headinjuries", "Head Injuries", []string{"concussion", "head injury"}},
	{"nosebleeds", "Nosebleeds", []string{"nosebleed", "nose bleed", "bloody nose"}},
	{"fever", "Fever", []string{"fever", "high temperature"}},
	{"headache", "Headache", []string{"headache", "head pain"}},
	{"sorethroat", "Sore Throat", []string{"sore throat", "throat pain"}},
	{"cough", "Cough", []string{"cough", "coughing"}},
	{"commoncold", "Common Cold", []string{"runny nose", "stuffy nose", "cold"}},
	{"nausea", "Nausea", []string{"nausea", "feeling sick"}},
	{"vomiting", "Vomiting", []string{"vomiting", "throwing up"}},
	{"diarrhea", "Diarrhea", []string{"diarrhea", "loose stools"}},
	{"constipation", "Constipation", []string{"constipation"}},
	{"fatigue", "Fatigue", []string{"fatigue", "tiredness", "exhaustion"}},
	{"dizziness", "Dizziness", []string{"dizziness", "dizzy"}},
	{"chestpain", "Chest Pain", []string{"chest pain"}},
	{"breathingproblems", "Breathing Problems", []string{"shortness of breath", "breathing problems"}},
	{"abdominalpain", "Abdominal Pain", []string{"abdominal pain", "stomach pain", "belly pain"}},
	{"backpain", "Back Pain", []string{"back pain"}},
	{"rashes", "Rashes", []string{"rash", "skin rash"}},
	{"seizures", "Seizures", []string{"seizure", "convulsion"}},
	{"sleepdisorders", "Sleep Disorders", []string{"insomnia", "sleep problems"}},
	{"anemia", "Anemia", []string{"anemia"}},
	{"alzheimersdisease", "Alzheimer's Disease", []string{"alzheimer's disease", "alzheimers disease", "alzheimer"}},
	{"parkinsonsdisease", "Parkinson's Disease", []string{"parkinson's disease", "parkinsons disease", "parkinson"}},
	{"epilepsy", "Epilepsy", []string{"epilepsy", "seizure disorder"}},
	{"copd", "COPD", []string{"copd", "chronic obstructive pulmonary disease"}},
	{"sinusitis", "Sinusitis", []string{"sinusitis", "sinus infection"}},
	{"urinarytractinfections", "Urinary Tract Infections", []string{"uti", "urinary tract infection"}},
	{"kidneystones", "Kidney Stones", []string{"kidney stones"}},
	{"dehydration", "Dehydration", []string{"dehydration", "dehydrated"}},
	{"foodpoisoning", "Food Poisoning", []string{"food poisoning"}},
	{"sunburn", "Sunburn", []string{"sunburn"}},
	{"heatillness", "Heat Illness", []string{"heat exhaustion", "heat stroke"}},
	{"hypothermia", "Hypothermia", []string{"hypothermia"}},
	{"allergicreactions", "Allergic Reactions", []string{"allergic reaction", "anaphylaxis"}},
	{"immunization", "Immunization", []string{"vaccination", "immunization", "vaccines"}},
	{"firstaid", "First Aid", []string{"first aid"}},
	{"choking", "Choking", []string{"choking"}},
}

var patterns = compile()

func compile() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(table))
	for i, e := range table {
		alts := make([]string, len(e.synonyms))
		for j, s := range e.synonyms {
			alts[j] = regexp.QuoteMeta(s)
		}
		out[i] = regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	}
	return out
}

// Match finds the first condition mentioned in the query, using word-boundary
// matching so "cold" does not fire on "coldplay". Only the single best
// (first) match is returned for accuracy; an unmatched query yields nil.
func Match(query string) []Link {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	for i, re := range patterns {
		if !re.MatchString(q) {
			continue
		}
		e := table[i]
		return []Link{
			{
				Provider: "MedlinePlus",
				Title:    e.display + " - MedlinePlus",
				URL:      fmt.Sprintf("https://medlineplus.gov/%s.html", e.slug),
			},
			{
				Provider: "CDC",
				Title:    e.display + " - CDC",
				URL:      "https://search.cdc.gov/search/?query=" + url.QueryEscape(e.display),
			},
		}
	}
	return nil
}
