package storage

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const visitFileName = "visit.yaml"

type yamlVisit struct {
	Visited bool `yaml:"visited"`
}

// LoadVisit reports whether the dial has been shown before.
// A missing file means this is the first visit.
func LoadVisit(appName string) (bool, error) {
	visitPath, err := resolveConfigPath(appName, visitFileName)
	if err != nil {
		return false, err
	}
	return loadVisitFile(visitPath)
}

// MarkVisited records that the dial has been shown.
func MarkVisited(appName string) error {
	visitPath, err := resolveConfigPath(appName, visitFileName)
	if err != nil {
		return err
	}
	return markVisitedFile(visitPath)
}

func loadVisitFile(visitPath string) (bool, error) {
	rawData, err := os.ReadFile(visitPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read visit file: %w", err)
	}

	var fileData yamlVisit
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return false, fmt.Errorf("parse visit yaml: %w", err)
	}
	return fileData.Visited, nil
}

func markVisitedFile(visitPath string) error {
	serialized, err := yaml.Marshal(yamlVisit{Visited: true})
	if err != nil {
		return fmt.Errorf("marshal visit yaml: %w", err)
	}
	return writeConfigFile(visitPath, serialized)
}
