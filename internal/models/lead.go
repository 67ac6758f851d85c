package models

import "time"

// Tender is a raw lead record discovered on government tender portals.
// Optional numeric fields are pointers so "absent" survives a round trip
// through storage; ranking code treats a nil score as 0 without mutating it.
type Tender struct {
	LeadID              string             `json:"lead_id"`
	CompanyName         string             `json:"company_name"`
	SourceType          string             `json:"source_type"`
	SourceURL           string             `json:"source_url"`
	ProductsRecommended []string           `json:"products_recommended"`
	ProductConfidence   map[string]float64 `json:"product_confidence,omitempty"`
	IndustrySector      string             `json:"industry_sector"`
	Location            string             `json:"location"`
	FacilityType        string             `json:"facility_type,omitempty"`
	Signals             []string           `json:"signals"`
	SignalStrength      string             `json:"signal_strength"`
	KeywordsMatched     []string           `json:"keywords_matched,omitempty"`
	UrgencyScore        *float64           `json:"urgency_score"`
	ConfidenceScore     *float64           `json:"confidence_score"`
	OverallScore        *float64           `json:"overall_score"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Deadline            *time.Time         `json:"deadline"`
	EstimatedValue      *float64           `json:"estimated_value"`
	TenderID            string             `json:"tender_id,omitempty"`
	NextAction          string             `json:"next_action"`
	DiscoveryDate       *time.Time         `json:"discovery_date"`
	ExtractionMethod    string             `json:"extraction_method,omitempty"`
	RawContext          string             `json:"raw_context,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// Project is a construction/expansion project detected on a company website.
type Project struct {
	ProjectName               string `json:"project_name"`
	ProjectDescription        string `json:"project_description,omitempty"`
	ProjectStatus             string `json:"project_status,omitempty"`
	ProjectCity               string `json:"project_city,omitempty"`
	ProjectState              string `json:"project_state,omitempty"`
	ProjectCountry            string `json:"project_country,omitempty"`
	ProjectLocation           string `json:"project_location,omitempty"`
	ProjectLocationSource     string `json:"project_location_source,omitempty"`
	ProjectLocationConfidence string `json:"project_location_confidence,omitempty"`
}

// ProjectOpportunity describes how a specific project could be supplied.
type ProjectOpportunity struct {
	ProjectName          string `json:"project_name"`
	SupplierRole         string `json:"supplier_role,omitempty"`
	EstimatedRequirement string `json:"estimated_requirement,omitempty"`
	ProcurementStage     string `json:"procurement_stage,omitempty"`
}

// KeyLead names the buying center inside the target company.
type KeyLead struct {
	ContactDepartment string `json:"contact_department,omitempty"`
	PotentialValue    string `json:"potential_value,omitempty"`
	Timeline          string `json:"timeline,omitempty"`
	DecisionMakers    string `json:"decision_makers,omitempty"`
}

// Partnership is the analyst-written partnership assessment attached to a
// website record.
type Partnership struct {
	Overview                     string               `json:"overview"`
	RawMaterialsPortfolio        []string             `json:"raw_materials_portfolio,omitempty"`
	PartnershipOpportunities     []string             `json:"partnership_opportunities,omitempty"`
	ProjectSpecificOpportunities []ProjectOpportunity `json:"project_specific_opportunities,omitempty"`
	KeyLeads                     []KeyLead            `json:"key_leads,omitempty"`
	CompetitiveAdvantages        []string             `json:"competitive_advantages,omitempty"`
	NextSteps                    []string             `json:"next_steps,omitempty"`
}

// Website is a raw lead record derived from a company website scan.
type Website struct {
	CompanyID          string       `json:"company_id"`
	CompanyName        string       `json:"company_name"`
	SourceType         string       `json:"source_type"`
	SourceURL          string       `json:"source_url"`
	Projects           []Project    `json:"projects"`
	IndustrySector     string       `json:"industry_sector"`
	Location           string       `json:"location,omitempty"`
	FacilityType       string       `json:"facility_type,omitempty"`
	Signals            []string     `json:"signals"`
	SignalStrength     string       `json:"signal_strength"`
	KeywordsMatched    []string     `json:"keywords_matched,omitempty"`
	UrgencyScore       *float64     `json:"urgency_score"`
	ConfidenceScore    *float64     `json:"confidence_score"`
	OverallScore       *float64     `json:"overall_score"`
	NextAction         string       `json:"next_action"`
	DiscoveryDate      *time.Time   `json:"discovery_date"`
	ExtractionMethod   string       `json:"extraction_method,omitempty"`
	Partnership        *Partnership `json:"partnership_opportunities"`
	City               string       `json:"city,omitempty"`
	State              string       `json:"state"`
	Country            string       `json:"country,omitempty"`
	LocationSource     string       `json:"location_source,omitempty"`
	LocationConfidence string       `json:"location_confidence,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

type LeadType string

const (
	LeadTypeTender  LeadType = "tender"
	LeadTypeWebsite LeadType = "website"
)

// Lead is the canonical view served to the dashboard: a tagged union over
// the two raw record shapes. Type determines which passthrough fields are
// meaningful; they are omitempty so each variant only carries its own.
type Lead struct {
	ID              string     `json:"id"`
	Type            LeadType   `json:"type"`
	CompanyName     string     `json:"company_name"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	State           string     `json:"state,omitempty"`
	OverallScore    *float64   `json:"overall_score"`
	UrgencyScore    *float64   `json:"urgency_score"`
	ConfidenceScore *float64   `json:"confidence_score"`
	SignalStrength  string     `json:"signal_strength"`
	IndustrySector  string     `json:"industry_sector"`
	NextAction      string     `json:"next_action"`
	SourceURL       string     `json:"source_url"`
	DiscoveryDate   *time.Time `json:"discovery_date"`

	// Tender passthrough.
	Deadline            *time.Time `json:"deadline,omitempty"`
	EstimatedValue      *float64   `json:"estimated_value,omitempty"`
	ProductsRecommended []string   `json:"products_recommended,omitempty"`

	Signals []string `json:"signals,omitempty"`

	// Website passthrough.
	Projects []Project `json:"projects,omitempty"`
}

// Score is the ranking key: nil overall_score sorts as 0.
func (l Lead) Score() float64 {
	if l.OverallScore == nil {
		return 0
	}
	return *l.OverallScore
}

// SourceRollup is a per-source aggregate over a filtered record set.
type SourceRollup struct {
	TotalLeads        int     `json:"totalLeads"`
	HighPriorityLeads int     `json:"highPriorityLeads"`
	AverageScore      float64 `json:"averageScore"`
	TotalValue        float64 `json:"totalValue,omitempty"`
}

// CombinedStats is the dashboard headline view over both sources.
type CombinedStats struct {
	TotalLeads        int     `json:"totalLeads"`
	TenderCount       int     `json:"tenderCount"`
	WebsiteCount      int     `json:"websiteCount"`
	HighPriorityLeads int     `json:"highPriorityLeads"`
	TotalValue        float64 `json:"totalValue"`
}
