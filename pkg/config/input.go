package config

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRepositoryList reads the ordered list of source repository URLs from a
// file. Blank lines and comment lines are ignored.
func ReadRepositoryList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository list: %w", err)
	}
	defer file.Close()
	return ParseRepositoryList(file)
}

// ParseRepositoryList parses repository URLs from a reader, one per line,
// skipping blank lines and lines starting with '#'.
func ParseRepositoryList(r io.Reader) ([]string, error) {
	var repos []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		repos = append(repos, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read repository list: %w", err)
	}
	return repos, nil
}

// ReadNameOverrides reads the optional source-URL to destination-name table
// from a two-column CSV file. An empty path yields an empty table.
func ReadNameOverrides(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open overrides file: %w", err)
	}
	defer file.Close()
	return ParseNameOverrides(file)
}

// ParseNameOverrides parses the override CSV from a reader.
func ParseNameOverrides(r io.Reader) (map[string]string, error) {
	overrides := make(map[string]string)
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse overrides: %w", err)
		}
		sourceURL := strings.TrimSpace(record[0])
		destName := strings.TrimSpace(record[1])
		if sourceURL == "" || destName == "" {
			continue
		}
		overrides[sourceURL] = destName
	}
	return overrides, nil
}
