package software

// Software is a validated catalog entry. Values are never modified in place;
// an edit constructs a new Software with New.
type Software struct {
	Name           string
	Executable     Executable
	Args           string
	ShellOverride  string
	InstalledRegex string
	URL            string
	LatestRegex    string
}

// New validates the entry and returns it. The only construction-time rule is
// a non-empty name; regexes are checked when they are used.
func New(s Software) (Software, error) {
	if s.Name == "" {
		return Software{}, &ConstructionError{Message: "Name must be non-empty"}
	}
	if s.Executable == nil {
		s.Executable = Static{}
	}
	return s, nil
}
