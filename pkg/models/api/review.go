package api

type CreateReviewRequest struct {
	AWSAccountID string   `json:"awsAccountId"`
	Region       string   `json:"region,omitempty"`
	Pillars      []string `json:"pillars,omitempty"`
}

type CreateReviewResponse struct {
	ReviewID string `json:"reviewId"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type Review struct {
	ReviewID        string           `json:"reviewId"`
	Timestamp       string           `json:"timestamp"`
	Status          string           `json:"status"`
	AWSAccountID    string           `json:"awsAccountId"`
	Region          string           `json:"region"`
	Pillars         []string         `json:"pillars"`
	Findings        []Finding        `json:"findings,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Score           *float64         `json:"score,omitempty"`
	ErrorMessage    *string          `json:"errorMessage,omitempty"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type Finding struct {
	ID          string `json:"id"`
	Pillar      string `json:"pillar"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	ResourceArn string `json:"resourceArn"`
	Service     string `json:"service"`
}

type Recommendation struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	Effort              string `json:"effort"`
	ImplementationGuide string `json:"implementationGuide"`
}

type ReviewList struct {
	Items     []Review `json:"items"`
	Count     int      `json:"count"`
	NextToken string   `json:"nextToken,omitempty"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type Error struct {
	Error string `json:"error"`
}
