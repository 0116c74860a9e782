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
	"strings"
)

// RemovePassword masks the password part of a connection URI so the URI can
// be logged safely.
func RemovePassword(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	authority := uri[:at]
	start := 0
	if idx := strings.Index(authority, "://"); idx >= 0 {
		start = idx + 3
	}
	colon := strings.LastIndex(authority[start:], ":")
	if colon < 0 {
		return uri
	}
	return authority[:start+colon] + ":****" + uri[at:]
}

// FormatBytes renders a byte count in a human-friendly unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func StringContains(s []string, sub string) bool {
	for _, v := range s {
		if v == sub {
			return true
		}
	}
	return false
}
