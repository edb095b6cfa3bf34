package domain

// GuardDecision is the workspace guard's verdict on one target path.
type GuardDecision struct {
	Allowed bool
	Target  string
	Reason  string
	Rule    string
}

// Allow builds a permissive decision for target.
func Allow(target string) GuardDecision {
	return GuardDecision{Allowed: true, Target: target}
}
