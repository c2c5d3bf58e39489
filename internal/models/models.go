// Package models holds the data types flowing through the recruitment
// pipeline: parsed candidates, per-agent evaluations, the ranked list and
// the final batch result. The JSON tags define the public result shape and
// must stay stable for downstream consumers.
package models

// PersonalInfo is the contact section extracted from a resume.
type PersonalInfo struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone,omitempty" mapstructure:"phone"`
	Location string `json:"location,omitempty" mapstructure:"location"`
	LinkedIn string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub   string `json:"github,omitempty" mapstructure:"github"`
}

// WorkExperience is one position in a candidate's work history.
type WorkExperience struct {
	Company          string   `json:"company" mapstructure:"company"`
	Role             string   `json:"role" mapstructure:"role"`
	StartDate        string   `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate          string   `json:"end_date,omitempty" mapstructure:"end_date"`
	DurationMonths   int      `json:"duration_months,omitempty" mapstructure:"duration_months"`
	Location         string   `json:"location,omitempty" mapstructure:"location"`
	Responsibilities []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Achievements     []string `json:"achievements,omitempty" mapstructure:"achievements"`
	Technologies     []string `json:"technologies,omitempty" mapstructure:"technologies"`
	IsCurrent        bool     `json:"is_current,omitempty" mapstructure:"is_current"`
}

// Education is one entry in a candidate's educational background.
type Education struct {
	Institution    string   `json:"institution" mapstructure:"institution"`
	Degree         string   `json:"degree" mapstructure:"degree"`
	FieldOfStudy   string   `json:"field_of_study,omitempty" mapstructure:"field_of_study"`
	GraduationDate string   `json:"graduation_date,omitempty" mapstructure:"graduation_date"`
	Honors         []string `json:"honors,omitempty" mapstructure:"honors"`
}

// Certification is a professional certification listed on a resume.
type Certification struct {
	Name                string `json:"name" mapstructure:"name"`
	IssuingOrganization string `json:"issuing_organization,omitempty" mapstructure:"issuing_organization"`
	IssueDate           string `json:"issue_date,omitempty" mapstructure:"issue_date"`
}

// Project is a portfolio project extracted from a resume.
type Project struct {
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description,omitempty" mapstructure:"description"`
	Technologies []string `json:"technologies,omitempty" mapstructure:"technologies"`
	URL          string   `json:"url,omitempty" mapstructure:"url"`
}

// Candidate is the structured record the resume parser produces from one
// free-text resume. It is immutable once created.
type Candidate struct {
	PersonalInfo   PersonalInfo     `json:"personal_info" mapstructure:"personal_info"`
	WorkExperience []WorkExperience `json:"work_experience" mapstructure:"work_experience"`
	Education      []Education      `json:"education,omitempty" mapstructure:"education"`
	Skills         []string         `json:"skills" mapstructure:"skills"`
	Certifications []Certification  `json:"certifications,omitempty" mapstructure:"certifications"`
	Projects       []Project        `json:"projects,omitempty" mapstructure:"projects"`
	Achievements   []string         `json:"achievements,omitempty" mapstructure:"achievements"`
}

// ParsedResume tags the outcome of parsing one resume with its batch-local
// index. Failed parses keep their slot so the summary can report exact
// counts; only successful ones continue to evaluation.
type ParsedResume struct {
	ID               string             `json:"id"`
	ResumeIndex      int                `json:"resume_index"`
	Status           string             `json:"status"`
	Error            string             `json:"error,omitempty"`
	Candidate        *Candidate         `json:"candidate_data,omitempty"`
	ConfidenceScores map[string]float64 `json:"confidence_scores,omitempty"`
}

// Succeeded reports whether the resume parsed cleanly.
func (p *ParsedResume) Succeeded() bool { return p.Status == StatusSuccess }

// MatchedSkill is a requirement the candidate demonstrably covers.
type MatchedSkill struct {
	Skill            string `json:"skill" mapstructure:"skill"`
	Evidence         string `json:"evidence,omitempty" mapstructure:"evidence"`
	ProficiencyLevel string `json:"proficiency_level,omitempty" mapstructure:"proficiency_level"`
}

// MissingSkill is a requirement the candidate does not cover.
type MissingSkill struct {
	Skill        string `json:"skill" mapstructure:"skill"`
	Importance   string `json:"importance,omitempty" mapstructure:"importance"`
	CanBeLearned bool   `json:"can_be_learned,omitempty" mapstructure:"can_be_learned"`
}

// TransferableSkill maps a candidate skill onto a related requirement.
type TransferableSkill struct {
	CandidateSkill string `json:"candidate_skill" mapstructure:"candidate_skill"`
	MapsTo         string `json:"maps_to" mapstructure:"maps_to"`
	Relevance      string `json:"relevance,omitempty" mapstructure:"relevance"`
}

// ScoreBreakdown splits the skills match into requirement categories.
type ScoreBreakdown struct {
	MustHaveScore   float64 `json:"must_have_score,omitempty" mapstructure:"must_have_score"`
	NiceToHaveScore float64 `json:"nice_to_have_score,omitempty" mapstructure:"nice_to_have_score"`
	BonusScore      float64 `json:"bonus_score,omitempty" mapstructure:"bonus_score"`
}

// SkillsEvaluation is the skills matcher's verdict for one candidate.
// MatchScore is normalized to [0,1]; the upstream model reports 0-100.
type SkillsEvaluation struct {
	MatchScore         float64             `json:"match_score"`
	MatchedSkills      []MatchedSkill      `json:"matched_skills"`
	MissingSkills      []MissingSkill      `json:"missing_skills"`
	TransferableSkills []TransferableSkill `json:"transferable_skills,omitempty"`
	Rationale          string              `json:"rationale"`
	Recommendation     string              `json:"recommendation"`
	DetailedBreakdown  ScoreBreakdown      `json:"detailed_breakdown,omitempty"`
}

// CulturalFitEvaluation is the cultural fit analyzer's verdict for one
// candidate. CulturalFitScore and all dimensional scores are in [0,1].
type CulturalFitEvaluation struct {
	CulturalFitScore          float64            `json:"cultural_fit_score"`
	DimensionalScores         map[string]float64 `json:"dimensional_scores"`
	Rationale                 string             `json:"rationale"`
	Evidence                  []string           `json:"evidence,omitempty"`
	PotentialConcerns         []string           `json:"potential_concerns,omitempty"`
	InterviewDiscussionPoints []string           `json:"interview_discussion_points,omitempty"`
}

// Evaluation pairs both agent verdicts for one successfully parsed
// candidate. It is produced once during the evaluation phase and never
// mutated.
type Evaluation struct {
	ID          string                 `json:"id"`
	ResumeIndex int                    `json:"resume_index"`
	Candidate   *Candidate             `json:"candidate_data"`
	Skills      *SkillsEvaluation      `json:"skills_evaluation"`
	Cultural    *CulturalFitEvaluation `json:"cultural_evaluation"`
}

// Candidate tiers derived from the overall score.
const (
	TierStrong   = "strong_match"
	TierModerate = "moderate_match"
	TierWeak     = "weak_match"
)

// Result statuses for agents and whole batches.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RankedCandidate is the read-only projection of a candidate plus its
// evaluations and computed scores. All score fields are on the 0-100
// display scale, rounded to two decimals.
type RankedCandidate struct {
	ID                string              `json:"id"`
	Candidate         *Candidate          `json:"candidate_data"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	Phone             string              `json:"phone"`
	OverallScore      float64             `json:"overall_score"`
	SkillsMatchScore  float64             `json:"skills_match_score"`
	CulturalFitScore  float64             `json:"cultural_fit_score"`
	ExperienceScore   float64             `json:"experience_score"`
	Tier              string              `json:"tier"`
	MatchedSkills     []MatchedSkill      `json:"matched_skills"`
	MissingSkills     []MissingSkill      `json:"missing_skills"`
	SkillsRationale   string              `json:"skills_rationale"`
	CulturalRationale string              `json:"cultural_rationale"`
	DimensionalScores map[string]float64  `json:"dimensional_scores"`
	Recommendation    string              `json:"recommendation"`
}

// ScheduledInterview records one successfully booked interview slot.
type ScheduledInterview struct {
	CandidateID     string `json:"candidate_id"`
	CandidateName   string `json:"candidate_name"`
	CandidateEmail  string `json:"candidate_email"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	CalendarEventID string `json:"calendar_event_id"`
	Status          string `json:"status"`
}

// ProcessingSummary reports exact per-phase counts for a batch. Partial
// failures surface here rather than in the top-level status.
type ProcessingSummary struct {
	TotalResumes        int `json:"total_resumes"`
	SuccessfullyParsed  int `json:"successfully_parsed"`
	EvaluationFailures  int `json:"evaluation_failures"`
	QualifiedCandidates int `json:"qualified_candidates"`
	InterviewsScheduled int `json:"interviews_scheduled"`
}

// Result is the batch outcome returned by the orchestrator. Status is
// "error" only for whole-batch failures; per-item failures are visible via
// the processing summary.
type Result struct {
	Status              string               `json:"status"`
	Message             string               `json:"message,omitempty"`
	BatchID             string               `json:"batch_id,omitempty"`
	RankedCandidates    []RankedCandidate    `json:"ranked_candidates"`
	ProcessingSummary   *ProcessingSummary   `json:"processing_summary,omitempty"`
	ScheduledInterviews []ScheduledInterview `json:"scheduled_interviews"`
}

// JobDescription is the position the batch is evaluated against.
type JobDescription struct {
	Title              string   `json:"title" mapstructure:"title"`
	Description        string   `json:"description,omitempty" mapstructure:"description"`
	RequiredSkills     []string `json:"required_skills" mapstructure:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills,omitempty" mapstructure:"preferred_skills"`
	ExperienceLevel    string   `json:"experience_level,omitempty" mapstructure:"experience_level"`
	Responsibilities   []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	CulturalAttributes []string `json:"cultural_attributes,omitempty" mapstructure:"cultural_attributes"`
	CompanyValues      []string `json:"company_values,omitempty" mapstructure:"company_values"`
	TeamDescription    string   `json:"team_description,omitempty" mapstructure:"team_description"`
	WorkEnvironment    string   `json:"work_environment,omitempty" mapstructure:"work_environment"`
}

// IsZero reports whether no job description was supplied.
func (j *JobDescription) IsZero() bool {
	return j == nil || (j.Title == "" && j.Description == "" && len(j.RequiredSkills) == 0)
}

// CompanyCulture is an optional explicit culture profile. When absent the
// cultural fit analyzer synthesizes one from the job description.
type CompanyCulture struct {
	Values          []string `json:"values,omitempty" mapstructure:"values"`
	TeamDescription string   `json:"team_description,omitempty" mapstructure:"team_description"`
	WorkEnvironment string   `json:"work_environment,omitempty" mapstructure:"work_environment"`
	Attributes      []string `json:"attributes,omitempty" mapstructure:"attributes"`
}

// IsZero reports whether no culture profile was supplied.
func (c *CompanyCulture) IsZero() bool {
	return c == nil || (len(c.Values) == 0 && len(c.Attributes) == 0 &&
		c.TeamDescription == "" && c.WorkEnvironment == "")
}
