package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
)

// Scoring weights. The four sub-scores sum to at most 100; the total is
// clamped to the 100 ceiling before rounding.
const (
	skillWeight        = 40.0
	workloadWeight     = 30.0
	productivityWeight = 20.0
	completionWeight   = 10.0

	// A task with no required skills gives every candidate this flat
	// neutral skill score instead of the full 40.
	neutralSkillScore = 30.0

	// Each active task shaves this much off the workload score, floored
	// at zero. Five or more active tasks zero it out.
	workloadPenaltyPerTask = 7.0
)

// Recommendation tiers.
const (
	TierHighlyRecommended = "Highly Recommended"
	TierGoodMatch         = "Good Match"
	TierAvailable         = "Available"

	tierHighThreshold = 70.0
	tierGoodThreshold = 45.0
)

// CandidateEmployee is the employee snapshot embedded in a recommendation.
type CandidateEmployee struct {
	ID                 uint64           `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Role               string           `json:"role"`
	Department         string           `json:"department"`
	Skills             models.SkillList `json:"skills"`
	ProductivityScore  float64          `json:"productivity_score"`
	TaskCompletionRate float64          `json:"task_completion_rate"`
}

// ScoreBreakdown itemizes how a match score was produced.
type ScoreBreakdown struct {
	SkillMatch          int      `json:"skill_match"`
	WorkloadScore       int      `json:"workload_score"`
	ProductivityContrib int      `json:"productivity_contrib"`
	CompletionBonus     int      `json:"completion_bonus"`
	CurrentActiveTasks  int      `json:"current_active_tasks"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
}

// Recommendation is one ranked candidate with score and reasoning.
type Recommendation struct {
	Employee   CandidateEmployee `json:"employee"`
	MatchScore int               `json:"match_score"`
	Breakdown  ScoreBreakdown    `json:"breakdown"`
	Reasons    []string          `json:"reasons"`
	Tier       string            `json:"recommendation"`
}

// RecommendedTask summarizes the task the ranking was computed for.
type RecommendedTask struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	RequiredSkills models.SkillList    `json:"required_skills"`
	Priority       models.TaskPriority `json:"priority"`
}

// RankedRecommendations is the full, ephemeral scoring result. It is
// serialized to the caller and never persisted.
type RankedRecommendations struct {
	Task            RecommendedTask  `json:"task"`
	Recommendations []Recommendation `json:"recommendations"`
	TopPick         *Recommendation  `json:"top_pick"`
	AnalysisNote    string           `json:"analysis_note"`
	AIInsight       string           `json:"ai_insight,omitempty"`
}

// IntelligenceService ranks an organization's active employees against a
// task. It is stateless: every call reads fresh data and holds no locks.
type IntelligenceService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
}

// NewIntelligenceService creates a new IntelligenceService
func NewIntelligenceService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository) *IntelligenceService {
	return &IntelligenceService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
	}
}

// Recommend scores every active employee in the task's organization and
// returns them ranked by match score. An organization with no active
// employees yields an empty list and a nil top pick, not an error.
func (s *IntelligenceService) Recommend(taskID, organizationID uint64) (*RankedRecommendations, error) {
	task, err := s.taskRepo.FindInOrganization(taskID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	requiredSkills := task.RequiredSkills.Lowered()

	result := &RankedRecommendations{
		Task: RecommendedTask{
			ID:             task.ID,
			Title:          task.Title,
			RequiredSkills: task.RequiredSkills,
			Priority:       task.Priority,
		},
		Recommendations: []Recommendation{},
		AnalysisNote:    analysisNote(requiredSkills),
	}

	employees, err := s.employeeRepo.ListActive(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return result, nil
	}

	activeCounts, err := s.taskRepo.CountActiveByAssignee(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active tasks: %w", err)
	}

	for _, emp := range employees {
		result.Recommendations = append(result.Recommendations, scoreEmployee(emp, requiredSkills, activeCounts[emp.ID]))
	}

	// Rank by match score; ties break toward the lower employee ID so
	// the ordering is deterministic regardless of storage iteration.
	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		a, b := result.Recommendations[i], result.Recommendations[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		return a.Employee.ID < b.Employee.ID
	})

	result.TopPick = &result.Recommendations[0]
	return result, nil
}

// scoreEmployee computes the four weighted sub-scores for one candidate.
func scoreEmployee(emp models.Employee, requiredSkills []string, activeCount int) Recommendation {
	matched := []string{}
	missing := []string{}

	var skillScore float64
	if len(requiredSkills) > 0 {
		for _, skill := range requiredSkills {
			if emp.Skills.ContainsFold(skill) {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		skillScore = float64(len(matched)) / float64(len(requiredSkills)) * skillWeight
	} else {
		skillScore = neutralSkillScore
	}

	workloadScore := math.Max(0, workloadWeight-float64(activeCount)*workloadPenaltyPerTask)
	productivityContrib := emp.ProductivityScore / 100 * productivityWeight
	completionBonus := emp.TaskCompletionRate / 100 * completionWeight

	total := skillScore + workloadScore + productivityContrib + completionBonus

	reasons := []string{}
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Has %d/%d required skills: %s", len(matched), len(requiredSkills), strings.Join(matched, ", ")))
	}
	if len(missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("Missing skills: %s", strings.Join(missing, ", ")))
	}
	reasons = append(reasons, fmt.Sprintf("Current workload: %d active %s", activeCount, pluralizeTask(activeCount)))
	if emp.ProductivityScore > 0 {
		reasons = append(reasons, fmt.Sprintf("Productivity score: %.1f/100", emp.ProductivityScore))
	}

	return Recommendation{
		Employee: CandidateEmployee{
			ID:                 emp.ID,
			Name:               emp.Name,
			Email:              emp.Email,
			Role:               emp.Role,
			Department:         emp.Department,
			Skills:             emp.Skills,
			ProductivityScore:  emp.ProductivityScore,
			TaskCompletionRate: emp.TaskCompletionRate,
		},
		MatchScore: int(math.Round(math.Min(100, total))),
		Breakdown: ScoreBreakdown{
			SkillMatch:          int(math.Round(skillScore)),
			WorkloadScore:       int(math.Round(workloadScore)),
			ProductivityContrib: int(math.Round(productivityContrib)),
			CompletionBonus:     int(math.Round(completionBonus)),
			CurrentActiveTasks:  activeCount,
			MatchedSkills:       matched,
			MissingSkills:       missing,
		},
		Reasons: reasons,
		Tier:    tierFor(total),
	}
}

func tierFor(total float64) string {
	switch {
	case total >= tierHighThreshold:
		return TierHighlyRecommended
	case total >= tierGoodThreshold:
		return TierGoodMatch
	default:
		return TierAvailable
	}
}

func analysisNote(requiredSkills []string) string {
	if len(requiredSkills) == 0 {
		return "No specific skills required; ranked by availability and productivity."
	}
	return fmt.Sprintf("Ranked by skill match (%s), workload, and performance history.", strings.Join(requiredSkills, ", "))
}

func pluralizeTask(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}
