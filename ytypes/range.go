// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import "fmt"

// IntRange is one "min..max" segment of a range/length restriction over
// signed integers.
type IntRange struct{ Min, Max int64 }

func (r IntRange) contains(v int64) bool { return v >= r.Min && v <= r.Max }

func (r IntRange) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// UintRange is the unsigned equivalent of IntRange.
type UintRange struct{ Min, Max uint64 }

func (r UintRange) contains(v uint64) bool { return v >= r.Min && v <= r.Max }

func (r UintRange) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// DecimalRange restricts a decimal64's scaled integer representation
// (value * 10^fraction-digits), matching RFC 7950 §9.3.5 range semantics
// without reintroducing floating-point rounding error.
type DecimalRange struct{ Min, Max int64 }

func (r DecimalRange) contains(v int64) bool { return v >= r.Min && v <= r.Max }

// IntRanges is an ordered, non-overlapping set of IntRange segments, any
// one of which satisfies a "range" restriction (RFC 7950 §9.2.4).
type IntRanges []IntRange

func (rs IntRanges) Contains(v int64) bool {
	for _, r := range rs {
		if r.contains(v) {
			return true
		}
	}
	return false
}

func (rs IntRanges) String() string {
	s := ""
	for i, r := range rs {
		if i > 0 {
			s += " | "
		}
		s += r.String()
	}
	return s
}

type UintRanges []UintRange

func (rs UintRanges) Contains(v uint64) bool {
	for _, r := range rs {
		if r.contains(v) {
			return true
		}
	}
	return false
}

func (rs UintRanges) String() string {
	s := ""
	for i, r := range rs {
		if i > 0 {
			s += " | "
		}
		s += r.String()
	}
	return s
}

type DecimalRanges []DecimalRange

func (rs DecimalRanges) Contains(v int64) bool {
	for _, r := range rs {
		if r.contains(v) {
			return true
		}
	}
	return false
}
