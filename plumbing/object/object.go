// Package object contains implementations of the objects stored in the
// content-addressed store, parsed from their canonical serializations.
package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrUnsupportedObject is returned when an object with an unexpected type is
// decoded.
var ErrUnsupportedObject = errors.New("unsupported object type")

// Signature is used to identify who and when created a commit or tag.
type Signature struct {
	// Name represents a person name. It is an arbitrary string.
	Name string
	// Email is an email, but it cannot be assumed to be well-formed.
	Email string
	// When is the timestamp of the signature.
	When time.Time
}

// Decode decodes a byte slice into a signature.
func (s *Signature) Decode(b []byte) {
	open := bytes.LastIndexByte(b, '<')
	closeBracket := bytes.LastIndexByte(b, '>')
	if open == -1 || closeBracket == -1 {
		return
	}

	if closeBracket < open {
		return
	}

	s.Name = string(bytes.Trim(b[:open], " "))
	s.Email = string(b[open+1 : closeBracket])

	hasTime := closeBracket+2 < len(b)
	if hasTime {
		s.decodeTimeAndTimeZone(b[closeBracket+2:])
	}
}

const timeZoneLength = 5

func (s *Signature) decodeTimeAndTimeZone(b []byte) {
	space := bytes.IndexByte(b, ' ')
	if space == -1 {
		space = len(b)
	}

	ts, err := strconv.ParseInt(string(b[:space]), 10, 64)
	if err != nil {
		return
	}

	s.When = time.Unix(ts, 0).In(time.UTC)
	var tzStart = space + 1
	if tzStart >= len(b) || tzStart+timeZoneLength > len(b) {
		return
	}

	timezone := string(b[tzStart : tzStart+timeZoneLength])
	tzhours, err1 := strconv.ParseInt(timezone[0:3], 10, 64)
	tzmins, err2 := strconv.ParseInt(timezone[3:], 10, 64)
	if err1 != nil || err2 != nil {
		return
	}
	if tzhours < 0 {
		tzmins *= -1
	}

	tz := time.FixedZone("", int(tzhours*60*60+tzmins*60))

	s.When = s.When.In(tz)
}

func (s *Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}
