// Copyright (C) 2024  Will Bond
//
// SPDX-License-Identifier: MIT

// Package pep440 implements PEP 440 -- Version Identification and Dependency
// Specification.
//
// https://www.python.org/dev/peps/pep-0440/
//
// Versions are parsed leniently, accepting the many historical spellings of
// pre-release, post-release and development suffixes, and compared through a
// uniform tuple model; specifiers are parsed strictly through the grammar
// package and evaluated clause by clause against a version.
package pep440
