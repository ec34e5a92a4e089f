// Package boilerplate holds the exact lines that are dropped from auxiliary
// files while they are merged.
package boilerplate

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// Matcher defines the interface for matching lines against a boilerplate set.
type Matcher interface {
	Matches(line string) bool
}

// Set represents a collection of exact boilerplate lines.
type Set struct {
	lines  map[string]struct{} // Line contents without terminators.
	order  []string            // Insertion order, for reporting.
	logger *zap.Logger
}

// Defaults returns the copyright banner, the include guard and the two
// self-include lines stripped from every auxiliary header.
func Defaults() []string {
	return []string{
		"// Copyright (c) Nicolas VENTER All rights reserved.",
		"#pragma once",
		`#include "../Displayer.hpp"`,
		`#include "ArrayConverter.hpp"`,
	}
}

// NewSet initializes a Set with the given lines.
func NewSet(logger *zap.Logger, lines ...string) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{
		lines:  make(map[string]struct{}, len(lines)),
		logger: logger,
	}
	s.Add(lines...)
	return s
}

// Add inserts lines into the set. Duplicates are ignored.
func (s *Set) Add(lines ...string) {
	for _, line := range lines {
		line = trimTerminator(line)
		if _, ok := s.lines[line]; ok {
			continue
		}
		s.lines[line] = struct{}{}
		s.order = append(s.order, line)
		s.logger.Debug("Added boilerplate line", zap.String("line", line))
	}
}

// LoadFile reads extra boilerplate lines from a file, one entry per non-empty
// line. Entries are taken verbatim, so lines starting with '#' are entries too.
func (s *Set) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("Failed to read boilerplate file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	var entries []string
	for _, line := range strings.Split(string(content), "\n") {
		line = trimTerminator(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	s.Add(entries...)
	s.logger.Debug("Loaded boilerplate file", zap.String("filePath", path), zap.Int("entries", len(entries)))
	return nil
}

// Matches reports whether a raw line, terminator included or not, is boilerplate.
func (s *Set) Matches(line string) bool {
	if s == nil {
		return false
	}
	_, ok := s.lines[trimTerminator(line)]
	return ok
}

// Lines returns the set's entries in insertion order.
func (s *Set) Lines() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct entries.
func (s *Set) Len() int {
	return len(s.order)
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
