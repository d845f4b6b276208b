// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// maxConfigFileSize bounds the config file read into memory.
const maxConfigFileSize int64 = 1 << 20

// formatCUEError formats a CUE error with JSON path prefixes:
//
//	config.cue: render.max_other_value: invalid value 0 (out of bound >=1)
func formatCUEError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path (["a", "0", "b"]) to JSON-path
// notation ("a[0].b"). The leading #Config definition is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && path[0] == "#Config" {
		path = path[1:]
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		switch {
		case isIndex && i > 0:
			result.WriteString("[" + part + "]")
		case i > 0:
			result.WriteString("." + part)
		default:
			result.WriteString(part)
		}
	}
	return result.String()
}

// checkFileSize verifies that data does not exceed maxSize.
func checkFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
