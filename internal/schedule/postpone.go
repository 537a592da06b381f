package schedule

import "regexp"

var postponedDate = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

// ExtractPostponedDate returns the first MM/DD/YYYY-looking substring of
// remarks, verbatim.
func ExtractPostponedDate(remarks string) (string, bool) {
	if remarks == "" {
		return "", false
	}
	m := postponedDate.FindString(remarks)
	return m, m != ""
}
