package object

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Signature is an author or committer ident as written in commit headers:
//
//	Name <email> unix-seconds ±HHMM
type Signature struct {
	Name  string
	Email string
	Unix  int64
	Zone  string // UTC offset exactly as written, e.g. "+0200"
}

var identPattern = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-]\d{4})$`)

// ParseSignature parses an ident line. Lines that do not match the canonical
// shape are rejected outright; no field is ever defaulted.
func ParseSignature(s string) (Signature, error) {
	m := identPattern.FindStringSubmatch(s)
	if m == nil {
		return Signature{}, fmt.Errorf("%w: bad ident line %q", ErrMalformed, s)
	}
	unix, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: bad ident timestamp %q", ErrMalformed, m[3])
	}
	return Signature{Name: m[1], Email: m[2], Unix: unix, Zone: m[4]}, nil
}

// Time returns the timestamp in the offset the ident was written with.
func (s Signature) Time() time.Time {
	t := time.Unix(s.Unix, 0)
	if len(s.Zone) != 5 {
		return t.UTC()
	}
	hours, _ := strconv.Atoi(s.Zone[1:3])
	mins, _ := strconv.Atoi(s.Zone[3:5])
	offset := hours*60*60 + mins*60
	if s.Zone[0] == '-' {
		offset = -offset
	}
	return t.In(time.FixedZone(s.Zone, offset))
}

// Date renders the local calendar time with its UTC offset, e.g.
// "2005-04-08 00:13:13 +02:00".
func (s Signature) Date() string {
	return s.Time().Format("2006-01-02 15:04:05 -07:00")
}

// String renders the canonical ident line.
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.Unix, s.Zone)
}
