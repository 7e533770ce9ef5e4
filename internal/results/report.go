package results

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spigell/resume-screener/internal/screening"
)

// Ranking flattens the candidates into printable rows, best first.
func Ranking(result *screening.ScreeningResult) []map[string]string {
	if result == nil {
		return nil
	}

	rows := make([]map[string]string, 0, len(result.Candidates))
	for i, c := range result.Candidates {
		row := map[string]string{
			"rank": strconv.Itoa(i + 1),
			"file": c.FileName,
		}

		if c.Evaluation != nil {
			row["overall_score"] = strconv.FormatFloat(c.Evaluation.OverallScore, 'f', 2, 64)
			row["recommendation"] = c.Evaluation.Recommendation
			row["scores"] = fmt.Sprintf("skills %.2f / experience %.2f / education %.2f",
				c.Evaluation.Scores.SkillsMatch,
				c.Evaluation.Scores.ExperienceMatch,
				c.Evaluation.Scores.EducationMatch,
			)
			if c.Evaluation.Analysis.OverallAnalysis != "" {
				row["analysis"] = c.Evaluation.Analysis.OverallAnalysis
			}
		}

		if info := c.CandidateInfo; info != nil {
			if name, ok := info.BasicInfo["name"].(string); ok && name != "" {
				row["name"] = name
			}
			if info.Contact.Email != "" {
				row["email"] = info.Contact.Email
			}
			if info.Contact.Phone != "" {
				row["phone"] = info.Contact.Phone
			}
			if len(info.Skills) > 0 {
				row["skills"] = strings.Join(info.Skills, ", ")
			}
			if flags := prestige(info.Education); flags != "" {
				row["prestige"] = flags
			}
		}

		rows = append(rows, row)
	}

	return rows
}

func prestige(education []screening.Education) string {
	var qs, p985, p211 bool
	for _, e := range education {
		qs = qs || e.IsQSTop20
		p985 = p985 || e.Is985
		p211 = p211 || e.Is211
	}

	var flags []string
	if qs {
		flags = append(flags, "QS top 20")
	}
	if p985 {
		flags = append(flags, "985")
	}
	if p211 {
		flags = append(flags, "211")
	}
	return strings.Join(flags, ", ")
}

// DumpToTmpFile writes the full result to a temporary JSON file and returns its path.
func DumpToTmpFile(result *screening.ScreeningResult) (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return file.Name(), nil
}
