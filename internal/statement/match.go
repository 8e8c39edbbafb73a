package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// numPattern is a decimal token: optional sign, optional thousands
// separators, exactly two fraction digits.
const numPattern = `[-+]?(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}`

// linePattern is the whole-line transaction grammar, in order:
//
//	date (DD Mon) [type marker XX] description amount [balance]
//
// The description is non-greedy so trailing numeric tokens bind to amount
// and balance rather than to the description. Because the balance is
// optional, a malformed number can still be absorbed into the description:
// "01 Mar DR Coffee 4.505 10.00" matches with description "Coffee 4.505",
// amount 10.00 and no balance.
var linePattern = regexp.MustCompile(
	`^(\d{1,2}\s+[A-Za-z]{3})\s+(?:([A-Z]{2})\s+)?(.+?)\s+(` + numPattern + `)(?:\s+(` + numPattern + `))?$`,
)

var numberPattern = regexp.MustCompile(`^` + numPattern + `$`)

// Match holds the raw fields of a transaction line. TypeToken and
// BalanceToken are empty when the line does not carry them.
type Match struct {
	DateToken    string
	TypeToken    string
	Description  string
	AmountToken  string
	BalanceToken string
}

// HasBalance reports whether a balance token was printed.
func (m Match) HasBalance() bool { return m.BalanceToken != "" }

// MatchLine applies the transaction grammar to one line. Lines that do not
// match are noise (headers, footers, running text).
func MatchLine(line string) (Match, bool) {
	sm := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if sm == nil {
		return Match{}, false
	}
	return Match{
		DateToken:    sm[1],
		TypeToken:    sm[2],
		Description:  strings.TrimSpace(sm[3]),
		AmountToken:  sm[4],
		BalanceToken: sm[5],
	}, true
}

// Matcher applies the grammar with knowledge of which two-letter tokens are
// real type markers.
type Matcher struct {
	markers MarkerTable
}

// NewMatcher creates a Matcher for a marker table.
func NewMatcher(markers MarkerTable) *Matcher {
	return &Matcher{markers: markers}
}

// Match is MatchLine, except that a captured two-letter token that is not a
// known marker is returned to the front of the description.
func (m *Matcher) Match(line string) (Match, bool) {
	mt, ok := MatchLine(line)
	if !ok {
		return Match{}, false
	}
	if mt.TypeToken != "" {
		if _, known := m.markers.Lookup(mt.TypeToken); !known {
			mt.Description = mt.TypeToken + " " + mt.Description
			mt.TypeToken = ""
		}
	}
	return mt, true
}

// ParseAmount converts a numeric token such as "-1,234.50" to a decimal.
func ParseAmount(token string) (decimal.Decimal, error) {
	if !numberPattern.MatchString(token) {
		return decimal.Decimal{}, fmt.Errorf("malformed numeric token %q", token)
	}
	s := strings.ReplaceAll(token, ",", "")
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing numeric token %q: %w", token, err)
	}
	return d, nil
}

// ParseDate combines a "DD Mon" token with year. Impossible dates such as
// "31 Feb" are rejected rather than rolled over.
func ParseDate(token string, year int) (time.Time, error) {
	fields := strings.Fields(token)
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("malformed date token %q", token)
	}
	value := fields[0] + " " + fields[1] + " " + strconv.Itoa(year)
	t, err := time.Parse("2 Jan 2006", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", token, err)
	}
	return t, nil
}
