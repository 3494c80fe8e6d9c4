package ingest

import "strings"

// MedlinePlusTopics is the curated topic list written to medlineplus.jsonl.
var MedlinePlusTopics = []string{
	"https://medlineplus.gov/flu.html",
	"https://medlineplus.gov/fever.html",
	"https://medlineplus.gov/chestpain.html",
	"https://medlineplus.gov/dehydration.html",
}

// CDCPages is the curated page list written to cdc.jsonl.
var CDCPages = []string{
	"https://www.cdc.gov/flu/symptoms/index.html",
	"https://www.cdc.gov/heartdisease/about.htm",
	"https://www.cdc.gov/dehydration/index.html",
}

// MedlinePlusTitle derives a display title from a MedlinePlus topic URL:
// the last path element minus its extension, hyphens as spaces, title-cased.
func MedlinePlusTitle(url string) string {
	seg := lastSegment(url)
	seg = strings.TrimSuffix(seg, ".html")
	return titleCase(strings.ReplaceAll(seg, "-", " "))
}

// CDCTitle derives a display title from a CDC URL, which ends in
// index.html/about.htm; the parent path element names the topic.
func CDCTitle(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) < 2 {
		return titleCase(url)
	}
	return titleCase(strings.ReplaceAll(parts[len(parts)-2], "-", " "))
}

func lastSegment(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	return parts[len(parts)-1]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
