// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

// Package pep508 implements the environment-marker half of PEP 508 --
// Dependency specification for Python Software Packages.
//
// https://www.python.org/dev/peps/pep-0508/
package pep508

import (
	"fmt"

	"github.com/wbond/pepcheck/pkg/python/grammar"
)

// Environment is a snapshot of the marker variables for one Python
// interpreter on one machine.  The zero value resolves every variable to
// the empty string.
type Environment struct {
	PythonVersion                string `yaml:"python_version"`
	PythonFullVersion            string `yaml:"python_full_version"`
	OSName                       string `yaml:"os_name"`
	SysPlatform                  string `yaml:"sys_platform"`
	PlatformVersion              string `yaml:"platform_version"`
	PlatformMachine              string `yaml:"platform_machine"`
	PlatformPythonImplementation string `yaml:"platform_python_implementation"`
	ImplementationName           string `yaml:"implementation_name"`
	ImplementationVersion        string `yaml:"implementation_version"`
}

func (env *Environment) resolve(kind grammar.Kind) (string, bool) {
	switch kind {
	case grammar.KindPythonVersion:
		return env.PythonVersion, true
	case grammar.KindPythonFullVersion:
		return env.PythonFullVersion, true
	case grammar.KindOSName:
		return env.OSName, true
	case grammar.KindSysPlatform:
		return env.SysPlatform, true
	case grammar.KindPlatformVersion:
		return env.PlatformVersion, true
	case grammar.KindPlatformMachine:
		return env.PlatformMachine, true
	case grammar.KindPlatformPythonImplementation:
		return env.PlatformPythonImplementation, true
	case grammar.KindImplementationName:
		return env.ImplementationName, true
	case grammar.KindImplementationVersion:
		return env.ImplementationVersion, true
	}
	return "", false
}

// Set assigns the marker variable with the given PEP 508 name.  Both the
// underscore spellings ("sys_platform") and the older dotted spellings
// ("sys.platform") are accepted.
func (env *Environment) Set(name, value string) error {
	switch name {
	case "python_version":
		env.PythonVersion = value
	case "python_full_version":
		env.PythonFullVersion = value
	case "os_name", "os.name":
		env.OSName = value
	case "sys_platform", "sys.platform":
		env.SysPlatform = value
	case "platform_version", "platform.version":
		env.PlatformVersion = value
	case "platform_machine", "platform.machine":
		env.PlatformMachine = value
	case "platform_python_implementation", "platform.python_implementation":
		env.PlatformPythonImplementation = value
	case "implementation_name":
		env.ImplementationName = value
	case "implementation_version":
		env.ImplementationVersion = value
	default:
		return fmt.Errorf("pep508: %q is not an environment marker variable", name)
	}
	return nil
}
