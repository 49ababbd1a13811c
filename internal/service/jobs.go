package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

const maxExtractedSkills = 20

// JobAnalyzerService extracts structured requirements from a job posting.
// Skill extraction prefers the generation client and falls back to keyword
// matching when the client is absent or fails.
type JobAnalyzerService struct {
	generation domain.GenerationClient
	logger     *zap.Logger
}

func NewJobAnalyzerService(generation domain.GenerationClient, logger *zap.Logger) *JobAnalyzerService {
	return &JobAnalyzerService{
		generation: generation,
		logger:     logger,
	}
}

// JobID derives a stable identifier from the posting's URL, title and company.
func JobID(job *domain.JobDescription) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%s", job.URL, job.Title, job.Company)))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *JobAnalyzerService) Analyze(ctx context.Context, job *domain.JobDescription) (*domain.JobAnalysis, error) {
	if strings.TrimSpace(job.Title) == "" && strings.TrimSpace(job.Description) == "" {
		return nil, fmt.Errorf("job description has no title or description text")
	}

	requiredText := append([]string{}, job.Requirements...)
	requiredText = append(requiredText, job.Description)

	keyRequirements := job.Requirements
	if len(keyRequirements) > 10 {
		keyRequirements = keyRequirements[:10]
	}

	analysis := &domain.JobAnalysis{
		JobID:           JobID(job),
		RequiredSkills:  s.extractSkills(ctx, requiredText),
		PreferredSkills: s.extractSkills(ctx, job.PreferredQualifications),
		Technologies:    extractTechnologies(job),
		SeniorityLevel:  determineSeniority(job.Title),
		RoleFocus:       determineRoleFocus(job),
		KeyRequirements: keyRequirements,
		AnalyzedAt:      time.Now().UTC(),
	}
	return analysis, nil
}

func (s *JobAnalyzerService) extractSkills(ctx context.Context, texts []string) []string {
	if len(texts) == 0 {
		return nil
	}
	combined := strings.TrimSpace(strings.Join(texts, " "))
	if combined == "" {
		return nil
	}

	if s.generation != nil {
		prompt := fmt.Sprintf(
			"Extract technical and professional skills from the following job requirements. Return only the skill names, one per line.\n\nRequirements:\n%s\n\nSkills:",
			combined,
		)
		response, err := s.generation.Complete(ctx, []domain.Message{
			{Role: "user", Content: prompt},
		}, 0.3, 500)
		if err == nil {
			var skills []string
			for _, line := range strings.Split(response, "\n") {
				line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
				if line == "" {
					continue
				}
				skills = append(skills, line)
				if len(skills) == maxExtractedSkills {
					break
				}
			}
			if len(skills) > 0 {
				return skills
			}
		} else {
			s.logger.Warn("skill extraction failed, using keyword fallback", zap.Error(err))
		}
	}

	return keywordSkills(combined)
}

var commonSkills = []string{
	"python", "javascript", "typescript", "go", "react", "node.js",
	"sql", "nosql", "rest api", "graphql", "microservices",
	"docker", "kubernetes", "aws", "azure", "ci/cd",
	"git", "agile", "scrum", "problem solving", "communication",
}

func keywordSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

var techKeywords = []string{
	"python", "javascript", "typescript", "java", "c#", "go", "rust",
	"react", "vue", "angular", "node.js", "express", "django", "flask",
	"postgresql", "mongodb", "redis", "mysql", "dynamodb",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"git", "jenkins", "github actions", "ci/cd",
}

func extractTechnologies(job *domain.JobDescription) []string {
	lower := strings.ToLower(job.Description + " " + strings.Join(job.Requirements, " "))
	var found []string
	for _, tech := range techKeywords {
		if strings.Contains(lower, tech) {
			found = append(found, tech)
		}
	}
	return found
}

func determineSeniority(title string) string {
	lower := strings.ToLower(title)
	for _, w := range []string{"senior", "sr", "lead", "principal", "staff"} {
		if strings.Contains(lower, w) {
			return "senior"
		}
	}
	for _, w := range []string{"junior", "jr", "entry", "associate"} {
		if strings.Contains(lower, w) {
			return "junior"
		}
	}
	return "mid"
}

func determineRoleFocus(job *domain.JobDescription) string {
	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)

	switch {
	case strings.Contains(title, "full stack") || strings.Contains(title, "fullstack"):
		return "full-stack"
	case strings.Contains(title, "backend") || strings.Contains(title, "back-end"):
		return "backend"
	case strings.Contains(title, "frontend") || strings.Contains(title, "front-end"):
		return "frontend"
	case strings.Contains(title, "devops") || strings.Contains(title, "sre"):
		return "devops"
	case strings.Contains(title, "data") || strings.Contains(title, "ml") || strings.Contains(title, "ai"):
		return "data/ml"
	}

	backendScore := strings.Count(desc, "backend") + strings.Count(desc, "api") + strings.Count(desc, "server")
	frontendScore := strings.Count(desc, "frontend") + strings.Count(desc, "ui") + strings.Count(desc, "react")

	switch {
	case backendScore > frontendScore:
		return "backend"
	case frontendScore > backendScore:
		return "frontend"
	default:
		return "general"
	}
}
