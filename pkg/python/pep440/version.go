// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// SuffixKind orders the version suffixes the way PEP 440 sorts them: a
// development release sorts before any pre-release, pre-releases before the
// final release, and post-releases after it.
type SuffixKind int

const (
	SuffixDev   SuffixKind = -4
	SuffixAlpha SuffixKind = -3
	SuffixBeta  SuffixKind = -2
	SuffixRC    SuffixKind = -1
	SuffixFinal SuffixKind = 0
	SuffixPost  SuffixKind = 1
)

// Segment is one suffix segment of a version; a final release is the single
// segment {SuffixFinal, 0}.
type Segment struct {
	Kind SuffixKind
	Num  int
}

// Version is a parsed PEP 440 version.  The comparable parts are the epoch,
// the release numbers, the suffix segments in source order, and the local
// version segments; Text preserves the original spelling (minus any ".*"
// wildcard) for round-tripping and for arbitrary equality.
type Version struct {
	Epoch   int
	Release []int
	Suffix  []Segment
	Local   []intstr.IntOrString

	Text     string
	Wildcard bool
}

// InvalidVersionError reports text that does not parse as a PEP 440 version.
type InvalidVersionError struct {
	Text string
}

func (err *InvalidVersionError) Error() string {
	return fmt.Sprintf("%q is not a valid PEP 440 version string", err.Text)
}

// reVersion accepts the lenient spellings from PEP 440 appendix B: an
// optional "v" prefix, separators drawn from "-", "_" or ".", the historical
// suffix aliases (alpha, beta, preview, c, rev, ...), and a bare "-N"
// post-release.  Input is lowercased before matching.
var reVersion = regexp.MustCompile(`^v?` +
	`(?:([0-9]+)!)?` +
	`([0-9]+(?:\.[0-9]+)*)` +
	`(?:[-._]?(alpha|a|beta|b|prerelease|preview|pre|c|rc)[-._]?([0-9]*))?` +
	`(?:(?:-([0-9]+))|(?:[-._]?(patch|post|rev|r)[-._]?([0-9]*)))?` +
	`(?:[-._]?(development|develop|devel|dev)[-._]?([0-9]*))?` +
	`(?:\+([a-z0-9]+(?:[-._][a-z0-9]+)*))?` +
	`$`)

// ParseVersion parses a version string, including the "1.2.*" wildcard form
// used by "==" and "!=" specifier clauses.
func ParseVersion(str string) (Version, error) {
	text := strings.TrimSpace(str)
	ver := Version{Text: text}

	normalized := strings.ToLower(text)
	if strings.HasSuffix(normalized, ".*") {
		ver.Wildcard = true
		normalized = strings.TrimSuffix(normalized, ".*")
		ver.Text = text[:len(text)-2]
	}

	match := reVersion.FindStringSubmatch(normalized)
	if match == nil {
		return Version{}, fmt.Errorf("pep440.ParseVersion: %w", &InvalidVersionError{Text: str})
	}
	epochStr, releaseStr := match[1], match[2]
	preTag, preNum := match[3], match[4]
	barePost, postTag, postNum := match[5], match[6], match[7]
	devTag, devNum := match[8], match[9]
	localStr := match[10]

	ver.Epoch = atoiDefault(epochStr)
	for _, part := range strings.Split(releaseStr, ".") {
		ver.Release = append(ver.Release, atoiDefault(part))
	}

	if preTag != "" {
		ver.Suffix = append(ver.Suffix, Segment{Kind: preKind(preTag), Num: atoiDefault(preNum)})
	}
	switch {
	case barePost != "":
		ver.Suffix = append(ver.Suffix, Segment{Kind: SuffixPost, Num: atoiDefault(barePost)})
	case postTag != "":
		ver.Suffix = append(ver.Suffix, Segment{Kind: SuffixPost, Num: atoiDefault(postNum)})
	}
	if devTag != "" {
		ver.Suffix = append(ver.Suffix, Segment{Kind: SuffixDev, Num: atoiDefault(devNum)})
	}
	if len(ver.Suffix) == 0 {
		ver.Suffix = []Segment{{Kind: SuffixFinal}}
	}

	if localStr != "" {
		for _, part := range strings.FieldsFunc(localStr, func(r rune) bool {
			return r == '-' || r == '_' || r == '.'
		}) {
			ver.Local = append(ver.Local, intstr.Parse(part))
		}
	}

	return ver, nil
}

func preKind(tag string) SuffixKind {
	switch tag {
	case "a", "alpha":
		return SuffixAlpha
	case "b", "beta":
		return SuffixBeta
	default:
		return SuffixRC
	}
}

func atoiDefault(str string) int {
	if str == "" {
		return 0
	}
	n, _ := strconv.Atoi(str)
	return n
}

// String returns the original spelling that the Version was parsed from.
func (v Version) String() string {
	if v.Wildcard {
		return v.Text + ".*"
	}
	return v.Text
}

// Normalized renders the version in the canonical form from PEP 440's
// "Normalization" section.
func (v Version) Normalized() string {
	var ret strings.Builder
	if v.Epoch != 0 {
		fmt.Fprintf(&ret, "%d!", v.Epoch)
	}
	for i, n := range v.Release {
		if i > 0 {
			ret.WriteByte('.')
		}
		ret.WriteString(strconv.Itoa(n))
	}
	for _, seg := range v.Suffix {
		switch seg.Kind {
		case SuffixAlpha:
			fmt.Fprintf(&ret, "a%d", seg.Num)
		case SuffixBeta:
			fmt.Fprintf(&ret, "b%d", seg.Num)
		case SuffixRC:
			fmt.Fprintf(&ret, "rc%d", seg.Num)
		case SuffixPost:
			fmt.Fprintf(&ret, ".post%d", seg.Num)
		case SuffixDev:
			fmt.Fprintf(&ret, ".dev%d", seg.Num)
		}
	}
	if len(v.Local) > 0 {
		ret.WriteByte('+')
		for i, seg := range v.Local {
			if i > 0 {
				ret.WriteByte('.')
			}
			ret.WriteString(seg.String())
		}
	}
	if v.Wildcard {
		ret.WriteString(".*")
	}
	return ret.String()
}

// Major returns the first release number.
func (v Version) Major() int { return v.releaseAt(0) }

// Minor returns the second release number, or 0 if absent.
func (v Version) Minor() int { return v.releaseAt(1) }

// Micro returns the third release number, or 0 if absent.
func (v Version) Micro() int { return v.releaseAt(2) }

func (v Version) releaseAt(i int) int {
	if i < len(v.Release) {
		return v.Release[i]
	}
	return 0
}

// IsFinal reports whether the version has no pre-release, post-release, or
// development suffix.
func (v Version) IsFinal() bool {
	return v.Suffix[0].Kind == SuffixFinal
}

// IsPreRelease reports whether the version is an alpha, beta, release
// candidate, or development release.
func (v Version) IsPreRelease() bool {
	return v.Suffix[0].Kind < SuffixFinal
}

// IsPostRelease reports whether the version carries a post-release suffix.
func (v Version) IsPostRelease() bool {
	for _, seg := range v.Suffix {
		if seg.Kind == SuffixPost {
			return true
		}
	}
	return false
}

// IsDev reports whether the version carries a development suffix.
func (v Version) IsDev() bool {
	for _, seg := range v.Suffix {
		if seg.Kind == SuffixDev {
			return true
		}
	}
	return false
}

// Cmp returns -1, 0, or 1 comparing v against o in PEP 440 order.  Release
// lists of different lengths are zero-padded and suffix lists are padded
// with final-release segments, so "1.0" and "1.0.0" compare equal.
func (v Version) Cmp(o Version) int {
	if d := cmpInt(v.Epoch, o.Epoch); d != 0 {
		return d
	}
	if d := cmpRelease(v.Release, o.Release); d != 0 {
		return d
	}
	if d := cmpSuffix(v.Suffix, o.Suffix); d != 0 {
		return d
	}
	return cmpLocal(v.Local, o.Local)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpRelease(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var an, bn int
		if i < len(a) {
			an = a[i]
		}
		if i < len(b) {
			bn = b[i]
		}
		if d := cmpInt(an, bn); d != 0 {
			return d
		}
	}
	return 0
}

func cmpSuffix(a, b []Segment) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		as, bs := Segment{Kind: SuffixFinal}, Segment{Kind: SuffixFinal}
		if i < len(a) {
			as = a[i]
		}
		if i < len(b) {
			bs = b[i]
		}
		if d := cmpInt(int(as.Kind), int(bs.Kind)); d != 0 {
			return d
		}
		if d := cmpInt(as.Num, bs.Num); d != 0 {
			return d
		}
	}
	return 0
}

// cmpLocal compares local version segments: a missing segment sorts first,
// and a numeric segment sorts after an alphanumeric one.
func cmpLocal(a, b []intstr.IntOrString) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i >= len(a):
			return -1
		case i >= len(b):
			return 1
		}
		if d := cmpLocalSegment(a[i], b[i]); d != 0 {
			return d
		}
	}
	return 0
}

func cmpLocalSegment(a, b intstr.IntOrString) int {
	if a.Type != b.Type {
		if a.Type == intstr.Int {
			return 1
		}
		return -1
	}
	if a.Type == intstr.Int {
		return cmpInt(int(a.IntVal), int(b.IntVal))
	}
	return strings.Compare(a.StrVal, b.StrVal)
}

// lastReleaseAdded returns a copy with delta added to the final release
// number.
func (v Version) lastReleaseAdded(delta int) Version {
	release := make([]int, len(v.Release))
	copy(release, v.Release)
	release[len(release)-1] += delta
	v.Release = release
	return v
}

// releaseTrimmed returns a copy with the last release number dropped.
func (v Version) releaseTrimmed() Version {
	v.Release = v.Release[:len(v.Release)-1]
	return v
}

// suffixCleared returns a copy reduced to a final release: suffix segments
// and the local version are discarded.
func (v Version) suffixCleared() Version {
	v.Suffix = []Segment{{Kind: SuffixFinal}}
	v.Local = nil
	return v
}
