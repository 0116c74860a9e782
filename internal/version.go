// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
package internal

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	version      = "0.2.0"
	revision     = "$Format:%h$"
	revisionDate = "$Format:%as$"
)

// Semver is a parsed semantic version.
type Semver struct {
	major, minor, patch uint64
	preRelease          string
}

// Version returns the release version of this build.
func Version() string {
	return version
}

// Parse parses a semantic version string like "1.2.3-alpha+build".
// The build metadata part is ignored. Returns nil on malformed input.
func Parse(versionStr string) *Semver {
	// strip build metadata
	if plus := strings.Index(versionStr, "+"); plus >= 0 {
		versionStr = versionStr[:plus]
	}
	var preRelease string
	if dash := strings.Index(versionStr, "-"); dash >= 0 {
		preRelease = versionStr[dash+1:]
		versionStr = versionStr[:dash]
	}
	parts := strings.Split(versionStr, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return nil
	}
	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil
		}
		nums[i] = n
	}
	return &Semver{major: nums[0], minor: nums[1], patch: nums[2], preRelease: preRelease}
}

// CompareVersions returns -1, 0 or 1 when v1 is older than, equal to or
// newer than v2. A release is newer than any of its pre-releases.
func CompareVersions(v1, v2 *Semver) (int, error) {
	if v1 == nil || v2 == nil {
		return 0, fmt.Errorf("cannot compare nil versions")
	}
	if v1.major != v2.major {
		return cmpUint64(v1.major, v2.major), nil
	}
	if v1.minor != v2.minor {
		return cmpUint64(v1.minor, v2.minor), nil
	}
	if v1.patch != v2.patch {
		return cmpUint64(v1.patch, v2.patch), nil
	}
	if v1.preRelease == v2.preRelease {
		return 0, nil
	}
	if v1.preRelease == "" {
		return 1, nil
	}
	if v2.preRelease == "" {
		return -1, nil
	}
	return strings.Compare(v1.preRelease, v2.preRelease), nil
}

func cmpUint64(a, b uint64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
