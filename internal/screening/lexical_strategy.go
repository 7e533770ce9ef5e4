package screening

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const StrategyLexical = "lexical"

// Degree ranks used by the education rule.
const (
	degreeUnknown = iota
	degreeAssociate
	degreeBachelor
	degreeMaster
	degreeDoctorate
)

var degreeNames = map[int]string{
	degreeAssociate: "associate",
	degreeBachelor:  "bachelor",
	degreeMaster:    "master",
	degreeDoctorate: "doctorate",
}

// Checked from the highest rank down so "master of business" never reads as bachelor.
var degreeKeywords = []struct {
	rank     int
	keywords []string
}{
	{degreeDoctorate, []string{"phd", "ph.d", "doctor", "doctorate", "博士"}},
	{degreeMaster, []string{"master", "msc", "m.sc", "m.s.", "mba", "硕士", "研究生"}},
	{degreeBachelor, []string{"bachelor", "bsc", "b.sc", "b.s.", "b.a.", "undergraduate", "学士", "本科"}},
	{degreeAssociate, []string{"associate", "diploma", "专科", "大专"}},
}

var (
	yearsPattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?|年)`)
	monthsPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mos?|个月)`)
	rangePattern  = regexp.MustCompile(`(?i)((?:19|20)\d{2})年?(?:[./-]?\d{1,2}月?)?\s*(?:-|–|—|~|to|至)\s*((?:19|20)\d{2}|present|now|current|today|至今|今)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// LexicalStrategy scores without the oracle: TF-IDF cosine similarity for
// skills and rule-based comparisons for experience and education.
type LexicalStrategy struct {
	now func() time.Time
}

func NewLexicalStrategy() *LexicalStrategy {
	return &LexicalStrategy{now: time.Now}
}

func (s *LexicalStrategy) Name() string { return StrategyLexical }

func (s *LexicalStrategy) Evaluate(_ context.Context, candidate *CandidateProfile, job *JobRequirements) (*Evaluation, error) {
	skills := SkillSimilarity(candidate.Skills, job.RequiredSkills)

	candidateYears := s.totalYears(candidate.Experience)
	requiredYears := parseRequiredYears(job.ExperienceRequirements)
	experience := experienceScore(candidateYears, requiredYears, len(candidate.Experience) > 0)

	candidateDegree := highestDegree(candidate.Education)
	requiredDegree := degreeRank(job.EducationRequirements.Degree)
	education := educationScore(candidateDegree, requiredDegree, len(candidate.Education) > 0)

	scores := Scores{
		SkillsMatch:     ClampScore(skills),
		ExperienceMatch: ClampScore(experience),
		EducationMatch:  ClampScore(education),
	}
	overall := WeightedScore(scores)
	recommendation := Recommend(overall)

	matched, missing := compareSkills(candidate.Skills, job.RequiredSkills)

	return &Evaluation{
		Scores:         scores,
		OverallScore:   overall,
		Recommendation: recommendation,
		Analysis: Analysis{
			SkillsAnalysis:     skillsAnalysis(matched, missing),
			ExperienceAnalysis: experienceAnalysis(candidateYears, requiredYears),
			EducationAnalysis:  educationAnalysis(candidateDegree, requiredDegree),
			OverallAnalysis:    fmt.Sprintf("Overall score %.2f: %s.", overall, recommendation),
		},
	}, nil
}

// SkillSimilarity is the cosine similarity of the TF-IDF vectors of both skill lists.
// Either side being empty yields 0.
func SkillSimilarity(candidate, required []string) float64 {
	a := tokenize(strings.Join(candidate, " "))
	b := tokenize(strings.Join(required, " "))
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	va, vb := tfidf(a, b)
	dot := 0.0
	for term, w := range va {
		dot += w * vb[term]
	}
	return ClampScore(dot)
}

// tfidf builds l2-normalised vectors over a two-document corpus with smoothed idf.
func tfidf(a, b []string) (map[string]float64, map[string]float64) {
	tfA, tfB := termCounts(a), termCounts(b)

	df := make(map[string]int, len(tfA)+len(tfB))
	for term := range tfA {
		df[term]++
	}
	for term := range tfB {
		df[term]++
	}

	const docs = 2.0
	weigh := func(tf map[string]int) map[string]float64 {
		vec := make(map[string]float64, len(tf))
		norm := 0.0
		for term, count := range tf {
			idf := math.Log((1+docs)/(1+float64(df[term]))) + 1
			w := float64(count) * idf
			vec[term] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		for term := range vec {
			vec[term] /= norm
		}
		return vec
	}

	return weigh(tfA), weigh(tfB)
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// tokenize lowercases and splits on anything but letters, digits and "+#.",
// so c++, c# and node.js survive as terms.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if utf8.RuneCountInString(w) >= 2 {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func compareSkills(candidate, required []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

func (s *LexicalStrategy) totalYears(entries []Experience) float64 {
	total := 0.0
	for _, e := range entries {
		total += s.durationYears(e.Duration)
	}
	return total
}

// durationYears understands "3 years", "18 months", "2019 - 2022", "2020.03-至今".
// Calendar ranges win over counts so "2019年-2022年" is not read as 2019 years.
func (s *LexicalStrategy) durationYears(duration string) float64 {
	if m := rangePattern.FindStringSubmatch(duration); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, err := strconv.Atoi(m[2])
		if err != nil {
			end = s.now().Year()
		}
		if end >= start {
			return float64(end - start)
		}
		return 0
	}

	years := 0.0
	if m := yearsPattern.FindStringSubmatch(duration); m != nil {
		if y, err := strconv.ParseFloat(m[1], 64); err == nil && y < 100 {
			years = y
		}
	}
	if m := monthsPattern.FindStringSubmatch(duration); m != nil {
		months, _ := strconv.Atoi(m[1])
		years += float64(months) / 12
	}

	return years
}

// parseRequiredYears reads the lower bound, so "3-5年" and "3+" both require 3.
func parseRequiredYears(req ExperienceRequirements) float64 {
	if n := numberPattern.FindString(req.Years); n != "" {
		years, _ := strconv.ParseFloat(n, 64)
		return years
	}
	if m := yearsPattern.FindStringSubmatch(req.Description); m != nil {
		years, _ := strconv.ParseFloat(m[1], 64)
		return years
	}
	return 0
}

func experienceScore(candidateYears, requiredYears float64, hasExperience bool) float64 {
	if requiredYears <= 0 {
		if hasExperience {
			return 1
		}
		return 0
	}
	return math.Min(candidateYears/requiredYears, 1)
}

func degreeRank(degree string) int {
	d := strings.ToLower(strings.TrimSpace(degree))
	if d == "" {
		return degreeUnknown
	}
	for _, level := range degreeKeywords {
		for _, kw := range level.keywords {
			if strings.Contains(d, kw) {
				return level.rank
			}
		}
	}
	return degreeUnknown
}

func highestDegree(entries []Education) int {
	best := degreeUnknown
	for _, e := range entries {
		if r := degreeRank(e.Degree); r > best {
			best = r
		}
	}
	return best
}

func educationScore(candidateRank, requiredRank int, hasEducation bool) float64 {
	if requiredRank == degreeUnknown {
		if hasEducation {
			return 1
		}
		return 0
	}
	return math.Min(float64(candidateRank)/float64(requiredRank), 1)
}

func skillsAnalysis(matched, missing []string) string {
	if len(matched) == 0 && len(missing) == 0 {
		return "No required skills were listed."
	}
	parts := make([]string, 0, 2)
	if len(matched) > 0 {
		parts = append(parts, "Matched skills: "+strings.Join(matched, ", ")+".")
	}
	if len(missing) > 0 {
		parts = append(parts, "Missing skills: "+strings.Join(missing, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func experienceAnalysis(candidateYears, requiredYears float64) string {
	if requiredYears <= 0 {
		return fmt.Sprintf("About %.1f years of experience; no minimum is required.", candidateYears)
	}
	return fmt.Sprintf("About %.1f years of experience against %.1f required.", candidateYears, requiredYears)
}

func educationAnalysis(candidateRank, requiredRank int) string {
	have := degreeNames[candidateRank]
	if have == "" {
		have = "unknown"
	}
	if requiredRank == degreeUnknown {
		return fmt.Sprintf("Highest degree: %s; no degree is required.", have)
	}
	return fmt.Sprintf("Highest degree: %s; required: %s.", have, degreeNames[requiredRank])
}
