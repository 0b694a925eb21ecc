package software

import "regexp"

// ExtractVersion applies pattern to text and returns the first occurrence of
// capture group 1, exactly as matched. Later occurrences are ignored.
func ExtractVersion(text, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", &InvalidPatternError{Pattern: pattern, Err: err}
	}

	loc := re.FindStringSubmatchIndex(text)
	if len(loc) < 4 || loc[2] < 0 {
		return "", &NoVersionMatchError{Pattern: pattern, Text: text}
	}
	return text[loc[2]:loc[3]], nil
}
