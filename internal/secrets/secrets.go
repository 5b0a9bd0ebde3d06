// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials and contact details from a directory
// of plain-text files. Each file is one secret: the filename is the key and
// the trimmed contents are the value.
//
// Known keys: reporter-contact-email.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ContactEmailKey names the file holding the contact address sent to
// RePORTER in the User-Agent header.
const ContactEmailKey = "reporter-contact-email"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files are
// reported to warn and skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	if warn == nil {
		warn = io.Discard
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}

// UserAgent appends the contact email from s to base as "base (mailto:x)".
// base is returned unchanged when no contact is configured.
func UserAgent(base string, s map[string]string) string {
	email, ok := s[ContactEmailKey]
	if !ok {
		return base
	}
	return fmt.Sprintf("%s (mailto:%s)", base, email)
}
