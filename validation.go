package frostr

// validateThreshold enforces the shared precondition of every splitting
// operation: 1 <= threshold <= total. The uint16 parameter types keep both
// values inside the external FROST identifier space by construction.
func validateThreshold(threshold, total uint16) error {
	if threshold < 1 || total < 1 || threshold > total {
		return &InvalidThresholdError{Threshold: threshold, Total: total}
	}
	return nil
}

// SecurityLevel grades a custody configuration.
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// SecurityAssessment describes the operational properties of an M-of-N
// configuration. It is advisory: the core operations accept any parameters
// that pass validateThreshold.
type SecurityAssessment struct {
	OverallRating    SecurityLevel `json:"overall_rating"`
	FaultTolerance   int           `json:"fault_tolerance"`   // participants that can go missing
	AttackResistance int           `json:"attack_resistance"` // participants an attacker must compromise
	AvailabilityRisk string        `json:"availability_risk"`
	Recommendations  []string      `json:"recommendations,omitempty"`
}

// AssessSecurity rates an M-of-N custody configuration. Invalid parameters
// rate low with an explanatory recommendation rather than an error, so the
// assessment can annotate audit events for failed operations too.
func AssessSecurity(threshold, total uint16) *SecurityAssessment {
	if validateThreshold(threshold, total) != nil {
		return &SecurityAssessment{
			OverallRating:    SecurityLevelLow,
			AvailabilityRisk: "critical - invalid parameters",
			Recommendations:  []string{"threshold must satisfy 1 <= threshold <= total"},
		}
	}

	assessment := &SecurityAssessment{
		FaultTolerance:   int(total - threshold),
		AttackResistance: int(threshold),
	}

	ratio := float64(threshold) / float64(total)
	switch {
	case threshold == 1:
		assessment.OverallRating = SecurityLevelLow
	case ratio < 0.5:
		assessment.OverallRating = SecurityLevelLow
	case ratio >= 0.67:
		assessment.OverallRating = SecurityLevelHigh
	default:
		assessment.OverallRating = SecurityLevelMedium
	}

	switch assessment.FaultTolerance {
	case 0:
		assessment.AvailabilityRisk = "critical - no fault tolerance"
	case 1:
		assessment.AvailabilityRisk = "high - single share loss is unrecoverable"
	case 2, 3:
		assessment.AvailabilityRisk = "medium - limited fault tolerance"
	default:
		assessment.AvailabilityRisk = "low - good fault tolerance"
	}

	if threshold == 1 {
		assessment.Recommendations = append(assessment.Recommendations,
			"threshold of 1 means any single share discloses the key")
	}
	if threshold == total {
		assessment.Recommendations = append(assessment.Recommendations,
			"threshold equals total - losing any share makes the key unrecoverable")
	}
	if assessment.OverallRating == SecurityLevelLow && threshold > 1 {
		assessment.Recommendations = append(assessment.Recommendations,
			"consider a threshold above half the participant count")
	}

	return assessment
}
