// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"regexp"
	"strconv"
	"time"

	"github.com/mutualcredit/transactord/fault"
)

// YYYY-MM-DD HH:MM:SS[.fraction] ±HHMM with optional spacing
var strictTime = regexp.MustCompile(`^\s*(\d{4})-(\d{2})-(\d{2})\s*(\d{2}):(\d{2}):(\d{2})(\.\d+)?\s*([+-])(\d{2})(\d{2})`)

// layouts tried when the strict form does not match
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.RubyDate,
	time.ANSIC,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime - normalise a header time
func ParseTime(s string) (time.Time, error) {
	if t, ok := parseStrict(s); ok {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		t, err := time.Parse(layout, s)
		if nil == err {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fault.TimeNotParsable
}

func parseStrict(s string) (time.Time, bool) {
	m := strictTime.FindStringSubmatch(s)
	if nil == m {
		return time.Time{}, false
	}

	n := make([]int, len(m))
	for i, field := range m {
		if 7 == i || 8 == i || 0 == i {
			continue
		}
		v, err := strconv.Atoi(field)
		if nil != err {
			return time.Time{}, false
		}
		n[i] = v
	}
	year, month, day := n[1], n[2], n[3]
	hour, minute, second := n[4], n[5], n[6]
	offsetHours, offsetMinutes := n[9], n[10]

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 60 || offsetMinutes > 59 {
		return time.Time{}, false
	}

	nanosecond := 0
	if "" != m[7] {
		fraction := m[7][1:]
		if len(fraction) > 9 {
			fraction = fraction[:9]
		}
		for len(fraction) < 9 {
			fraction += "0"
		}
		nanosecond, _ = strconv.Atoi(fraction)
	}

	offset := offsetHours*3600 + offsetMinutes*60
	if "-" == m[8] {
		offset = -offset
	}
	zone := time.FixedZone("", offset)

	t := time.Date(year, time.Month(month), day, hour, minute, second, nanosecond, zone)
	return t.UTC(), true
}
