package identity

// Policy decides how raw caller-supplied names become identifiers.
// One policy is selected per engine instance.
type Policy interface {
	// Normalize returns the identifier to use for raw, or an error when
	// the policy refuses the input.
	Normalize(raw string, kind Kind) (string, error)
}

// LenientPolicy silently sanitizes every input.
type LenientPolicy struct{}

// Normalize implements Policy.
func (LenientPolicy) Normalize(raw string, kind Kind) (string, error) {
	return Sanitize(raw, kind), nil
}

// StrictPolicy rejects inputs that are not already valid identifiers.
type StrictPolicy struct{}

// Normalize implements Policy.
func (StrictPolicy) Normalize(raw string, kind Kind) (string, error) {
	if err := Validate(raw, kind); err != nil {
		return "", err
	}
	return raw, nil
}

// ForMode returns the policy for a config mode string. Anything other
// than "strict" selects the lenient policy.
func ForMode(mode string) Policy {
	if mode == "strict" {
		return StrictPolicy{}
	}
	return LenientPolicy{}
}
