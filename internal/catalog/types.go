package catalog

// Phase is one step of a career track.
type Phase struct {
	Phase       string   `json:"phase"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
}

// Track is an ordered career progression.
type Track struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Phases []Phase `json:"phases"`
}

// Careers holds the career mapping page content.
type Careers struct {
	Tracks []Track `json:"tracks"`
}

// Skill is an assessable skill.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Gap is the fixed assessment shown on the skill analysis page.
type Gap struct {
	Strong     []string `json:"strong"`
	Developing []string `json:"developing"`
	Missing    []string `json:"missing"`
}

// LearningPath is a suggested course bundle for one skill.
type LearningPath struct {
	Skill    string   `json:"skill"`
	Priority string   `json:"priority"`
	Courses  []string `json:"courses"`
	Duration string   `json:"duration"`
	Provider string   `json:"provider"`
}

// Skills holds the skill analysis page content.
type Skills struct {
	Available     []Skill        `json:"available"`
	Gap           Gap            `json:"gap"`
	LearningPaths []LearningPath `json:"learningPaths"`
}

// MarketSummary holds the headline market figures.
type MarketSummary struct {
	JobGrowth        string `json:"jobGrowth"`
	AverageSalary    string `json:"averageSalary"`
	TotalOpenings    string `json:"totalOpenings"`
	DemandTrend      string `json:"demandTrend"`
	CompetitionLevel string `json:"competitionLevel"`
}

// SkillDemand is one row of the in-demand skills table.
type SkillDemand struct {
	Skill  string `json:"skill"`
	Demand int    `json:"demand"` // percent
	Growth string `json:"growth"`
}

// SalaryRange is one seniority band.
type SalaryRange struct {
	Level  string `json:"level"`
	Range  string `json:"range"`
	Median string `json:"median"`
}

// TrendPoint is one month of job and application counts.
type TrendPoint struct {
	Month        string `json:"month"`
	Jobs         int    `json:"jobs"`
	Applications int    `json:"applications"`
}

// Market holds the market insights page content.
type Market struct {
	Summary      MarketSummary `json:"summary"`
	TopSkills    []SkillDemand `json:"topSkills"`
	SalaryRanges []SalaryRange `json:"salaryRanges"`
	Trends       []TrendPoint  `json:"trends"`
}

// Interest is a career interest offered on the multi-path page.
type Interest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Hybrid is a career combining two interests.
type Hybrid struct {
	Interests   []string `json:"interests"`
	Title       string   `json:"title"`
	Overlap     int      `json:"overlap"` // percent
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Companies   []string `json:"companies"`
	Timeline    string   `json:"timeline"`
	Salary      string   `json:"salary"`
}

// MultiPath holds the multi-path page content.
type MultiPath struct {
	Interests []Interest `json:"interests"`
	Hybrids   []Hybrid   `json:"hybrids"`
}

// Scenario is a career disruption scenario.
type Scenario struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Probability string `json:"probability"`
}

// Contingency is a single fallback plan.
type Contingency struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	Steps       []string `json:"steps"`
	Resources   []string `json:"resources"`
}

// Plan pairs the two fallback plans for a scenario.
type Plan struct {
	Scenario string      `json:"scenario"`
	PlanB    Contingency `json:"planB"`
	PlanC    Contingency `json:"planC"`
}

// Resilience holds the resilience planning page content.
type Resilience struct {
	Scenarios []Scenario `json:"scenarios"`
	Plans     []Plan     `json:"plans"`
}
