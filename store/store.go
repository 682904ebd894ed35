package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDir           = "cinema-seating"
	maxRecentLayouts = 8
)

type fileEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// Settings are the operator preferences restored on the next start.
type Settings struct {
	LayoutPath string `json:"layout_path"`
	PlanPath   string `json:"plan_path"`
	Group      int    `json:"group"`
	ShowLabels bool   `json:"show_labels"`
}

type RecentLayout struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

type layoutHistory struct {
	Layouts []RecentLayout `json:"layouts"`
}

func LoadSettings() (Settings, error) {
	defaults := Settings{Group: 1, ShowLabels: true}
	path, err := configPath("settings.json")
	if err != nil {
		return defaults, err
	}
	envelope, found, err := loadJSON[Settings](path)
	if err != nil {
		return defaults, err
	}
	if !found {
		return defaults, nil
	}
	settings := envelope.Data
	if settings.Group <= 0 {
		settings.Group = 1
	}
	return settings, nil
}

func SaveSettings(settings Settings) error {
	path, err := configPath("settings.json")
	if err != nil {
		return err
	}
	return saveJSON(path, settings)
}

func LoadRecentLayouts() ([]RecentLayout, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	envelope, _, err := loadJSON[layoutHistory](path)
	if err != nil {
		return nil, errors.New("invalid layout history format")
	}
	return envelope.Data.Layouts, nil
}

// RememberLayout moves path to the front of the recent layouts list.
func RememberLayout(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("layout path is required")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	history, _ := LoadRecentLayouts()
	next := []RecentLayout{{Path: path, OpenedAt: time.Now()}}
	for _, existing := range history {
		if existing.Path == path || existing.Path == "" {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentLayouts {
			break
		}
	}

	historyPath, err := configPath("history.json")
	if err != nil {
		return err
	}
	return saveJSON(historyPath, layoutHistory{Layouts: next})
}

func loadJSON[T any](path string) (fileEnvelope[T], bool, error) {
	var envelope fileEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return envelope, false, nil
		}
		return envelope, false, err
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return envelope, false, err
	}
	return envelope, true, nil
}

func saveJSON[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	envelope := fileEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
