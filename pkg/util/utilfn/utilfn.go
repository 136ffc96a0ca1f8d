// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilfn

import (
	"bytes"
	"os"
	"strings"
)

func WriteFileIfDifferent(fileName string, contents []byte) (bool, error) {
	oldContents, err := os.ReadFile(fileName)
	if err == nil && bytes.Equal(oldContents, contents) {
		return false, nil
	}
	err = os.WriteFile(fileName, contents, 0644)
	if err != nil {
		return false, err
	}
	return true, nil
}

// SplitCommaList splits "a, b,,c" into ["a" "b" "c"]
func SplitCommaList(values []string) []string {
	var rtn []string
	for _, val := range values {
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			rtn = append(rtn, part)
		}
	}
	return rtn
}

// returns a copy of arr without duplicates (first occurrence wins)
func DedupStrings(arr []string) []string {
	seen := make(map[string]bool, len(arr))
	var rtn []string
	for _, s := range arr {
		if seen[s] {
			continue
		}
		seen[s] = true
		rtn = append(rtn, s)
	}
	return rtn
}
