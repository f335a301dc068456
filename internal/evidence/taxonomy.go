package evidence

// Class is the error-handling taxonomy for data-quality outcomes. None of the
// classes is fatal; they are carried as values.
type Class string

const (
	ClassStructuralInvalid   Class = "STRUCTURAL_INVALID"
	ClassSemanticNoise       Class = "SEMANTIC_NOISE"
	ClassImplausible         Class = "IMPLAUSIBLE"
	ClassMatchBelowThreshold Class = "MATCH_BELOW_THRESHOLD"
	ClassConflictingEvidence Class = "CONFLICTING_EVIDENCE"
)

// ClassOf maps a reason code onto its taxonomy class.
func ClassOf(reason ReasonCode) Class {
	switch reason {
	case ReasonMissingField:
		return ClassStructuralInvalid
	case ReasonNoise:
		return ClassSemanticNoise
	case ReasonImplausible:
		return ClassImplausible
	case ReasonBelowThreshold:
		return ClassMatchBelowThreshold
	case ReasonConflict:
		return ClassConflictingEvidence
	default:
		return ""
	}
}
