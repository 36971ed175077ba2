// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package pep440_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/wbond/pepcheck/pkg/python/pep440"
)

func mustParseVersion(t *testing.T, str string) pep440.Version {
	t.Helper()
	ver, err := pep440.ParseVersion(str)
	require.NoError(t, err)
	return ver
}

// randVersion generates a structurally valid random Version: a non-empty
// release, suffix segments in canonical order with at most one of each
// kind, and alphanumeric local segments.  testing/quick's default
// generation would produce segment kinds and intstr types that no parse
// can yield.
func randVersion(rng *rand.Rand) pep440.Version {
	ver := pep440.Version{
		Epoch: rng.Intn(3),
	}
	for i := rng.Intn(4) + 1; i > 0; i-- {
		ver.Release = append(ver.Release, rng.Intn(20))
	}
	if rng.Intn(2) == 0 {
		kinds := []pep440.SuffixKind{pep440.SuffixAlpha, pep440.SuffixBeta, pep440.SuffixRC}
		ver.Suffix = append(ver.Suffix, pep440.Segment{
			Kind: kinds[rng.Intn(len(kinds))],
			Num:  rng.Intn(5),
		})
	}
	if rng.Intn(2) == 0 {
		ver.Suffix = append(ver.Suffix, pep440.Segment{Kind: pep440.SuffixPost, Num: rng.Intn(5)})
	}
	if rng.Intn(2) == 0 {
		ver.Suffix = append(ver.Suffix, pep440.Segment{Kind: pep440.SuffixDev, Num: rng.Intn(5)})
	}
	if len(ver.Suffix) == 0 {
		ver.Suffix = []pep440.Segment{{Kind: pep440.SuffixFinal}}
	}
	for i := rng.Intn(3); i > 0; i-- {
		if rng.Intn(2) == 0 {
			ver.Local = append(ver.Local, intstr.FromInt(rng.Intn(100)))
		} else {
			words := []string{"ubuntu", "deadbeef", "el7", "local"}
			ver.Local = append(ver.Local, intstr.FromString(words[rng.Intn(len(words))]))
		}
	}
	return ver
}
