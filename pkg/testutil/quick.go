// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

type QuickConfig = quick.Config

// QuickCheck is similar to testing/quick.Check, but additionally feeds fn
// each of the given static argument lists, so that known interesting inputs
// are always exercised alongside the random ones.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig, statics ...[]interface{}) {
	t.Helper()
	err := quick.Check(fn, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fnVal := reflect.ValueOf(fn)
	for i, static := range statics {
		args, ok := staticArgs(t, i, static, fnVal.Type().NumIn())
		if !ok {
			continue
		}
		if !fnVal.Call(args)[0].Bool() {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckError{
				Count: i + 1,
				In:    toInterfaces(args),
			}))
		}
	}
}

// QuickCheckEqual is similar to testing/quick.CheckEqual, but additionally
// feeds both functions each of the given static argument lists.
func QuickCheckEqual(t *testing.T, fn1, fn2 interface{}, cfg QuickConfig, statics ...[]interface{}) {
	t.Helper()
	err := quick.CheckEqual(fn1, fn2, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fn1Val := reflect.ValueOf(fn1)
	fn2Val := reflect.ValueOf(fn2)
	for i, static := range statics {
		args, ok := staticArgs(t, i, static, fn1Val.Type().NumIn())
		if !ok {
			continue
		}
		ret1 := toInterfaces(fn1Val.Call(args))
		ret2 := toInterfaces(fn2Val.Call(args))
		if !reflect.DeepEqual(ret1, ret2) {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckEqualError{
				CheckError: quick.CheckError{
					Count: i + 1,
					In:    toInterfaces(args),
				},
				Out1: ret1,
				Out2: ret2,
			}))
		}
	}
}

func staticArgs(t *testing.T, i int, static []interface{}, numIn int) ([]reflect.Value, bool) {
	t.Helper()
	if len(static) != numIn {
		t.Errorf("static#%d has %d args, but the function takes %d args",
			i, len(static), numIn)
		return nil, false
	}
	args := make([]reflect.Value, len(static))
	for j := range args {
		args[j] = reflect.ValueOf(static[j])
	}
	return args, true
}

func toInterfaces(values []reflect.Value) []interface{} {
	ret := make([]interface{}, len(values))
	for i, val := range values {
		ret[i] = val.Interface()
	}
	return ret
}
