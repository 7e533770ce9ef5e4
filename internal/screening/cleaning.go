package screening

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/universities"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	phonePatterns = map[Language]*regexp.Regexp{
		LanguageEnglish: regexp.MustCompile(`^\+?\d{1,3}[-.]?\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}$`),
		LanguageChinese: regexp.MustCompile(`^(?:\+?86)?1[3-9]\d{9}$`),
	}

	skillSeparators = regexp.MustCompile(`[,，、;；]`)
)

// cleanProfile builds a CandidateProfile from raw oracle output.
// It is deterministic: the same data and language always give the same profile.
func cleanProfile(data map[string]any, lang Language) *CandidateProfile {
	profile := EmptyCandidateProfile()

	if basic, ok := data["basic_info"].(map[string]any); ok {
		for k, v := range basic {
			profile.BasicInfo[k] = v
		}
	}

	if contact, ok := data["contact"].(map[string]any); ok {
		profile.Contact = cleanContact(contact, lang)
	}

	profile.Summary = extraction.String(data["summary"])
	profile.Skills = cleanSkills(data["skills"])
	profile.Experience = cleanExperience(data["experience"])
	profile.Education = annotateEducation(cleanEducation(data["education"]))
	profile.Projects = cleanRecords(data["projects"])
	profile.Certifications = cleanRecords(data["certifications"])
	profile.Languages = cleanRecords(data["languages"])

	return profile
}

func cleanContact(contact map[string]any, lang Language) Contact {
	var cleaned Contact

	if email, ok := contact["email"].(string); ok {
		email = strings.TrimSpace(email)
		if emailPattern.MatchString(email) {
			cleaned.Email = email
		}
	}

	if phone := scalarText(contact["phone"]); phone != "" {
		phone = strings.Join(strings.Fields(phone), "")
		pattern, ok := phonePatterns[lang]
		if !ok {
			pattern = phonePatterns[LanguageEnglish]
		}
		if pattern.MatchString(phone) {
			cleaned.Phone = phone
		}
	}

	return cleaned
}

// cleanSkills trims and deduplicates, keeping the first occurrence of each skill.
// A single string is treated as a delimited list: "Go, Python" or "Go、Python".
func cleanSkills(v any) []string {
	if s, ok := v.(string); ok {
		v = skillSeparators.Split(s, -1)
	}
	skills := extraction.Strings(v)
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func cleanExperience(v any) []Experience {
	out := []Experience{}
	for _, item := range asList(v) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		exp := Experience{
			Company:          extraction.String(entry["company"]),
			Title:            extraction.String(entry["title"]),
			Duration:         extraction.String(entry["duration"]),
			Responsibilities: extraction.Strings(entry["responsibilities"]),
		}
		if exp.Company == "" || exp.Title == "" {
			continue
		}
		out = append(out, exp)
	}
	return out
}

func cleanEducation(v any) []Education {
	out := []Education{}
	for _, item := range asList(v) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		edu := Education{
			Degree:      extraction.String(entry["degree"]),
			Institution: extraction.String(entry["institution"]),
			Year:        extraction.String(entry["year"]),
			Major:       extraction.String(entry["major"]),
		}
		if edu.Institution == "" {
			continue
		}
		out = append(out, edu)
	}
	return out
}

func annotateEducation(entries []Education) []Education {
	for i := range entries {
		name := entries[i].Institution
		entries[i].IsQSTop20 = universities.IsQSTop20(name)
		entries[i].Is985 = universities.Is985(name)
		entries[i].Is211 = universities.Is211(name)
	}
	return entries
}

// cleanRecords passes objects through and wraps bare strings as {"name": s}.
func cleanRecords(v any) []map[string]any {
	out := []map[string]any{}
	for _, item := range asList(v) {
		switch val := item.(type) {
		case map[string]any:
			out = append(out, val)
		case string:
			if s := strings.TrimSpace(val); s != "" {
				out = append(out, map[string]any{"name": s})
			}
		}
	}
	return out
}

func asList(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	default:
		return []any{val}
	}
}

// scalarText accepts strings and numbers; phone numbers often arrive as JSON numbers.
func scalarText(v any) string {
	switch v.(type) {
	case string, float64, int, int64:
		return extraction.String(v)
	default:
		return ""
	}
}
