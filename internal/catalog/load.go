package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/types"
)

// Data file names, both embedded and in an override directory
const (
	JobsFile       = "jobs.json"
	ResourcesFile  = "resources.json"
	MentorshipFile = "mentorship.json"
)

//go:embed data/*.json
var dataFiles embed.FS

// SchemaFor maps a data file name to the schema it must satisfy
var SchemaFor = map[string]string{
	JobsFile:       schemas.Jobs,
	ResourcesFile:  schemas.Resources,
	MentorshipFile: schemas.Mentorship,
}

type resourcesDoc struct {
	ByKey   []ResourceGroup          `json:"byKey"`
	General []types.LearningResource `json:"general"`
}

type mentorshipDoc struct {
	Platforms       []types.MentorshipPlatform   `json:"platforms"`
	Recommendations []MentorGroup                `json:"recommendations"`
	General         []types.MentorRecommendation `json:"general"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded data.
// It is loaded once and shared.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load("")
	})
	return defaultCatalog, defaultErr
}

// Load builds a catalog from the embedded data. When dir is not empty, any of
// jobs.json, resources.json and mentorship.json found there replaces the
// embedded file of the same name. Every file is schema-validated before decoding.
func Load(dir string) (*Catalog, error) {
	var data Data

	// 1. Jobs
	raw, err := readDataFile(dir, JobsFile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &data.Jobs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", JobsFile, err)
	}

	// 2. Learning resources
	raw, err = readDataFile(dir, ResourcesFile)
	if err != nil {
		return nil, err
	}
	var res resourcesDoc
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ResourcesFile, err)
	}
	data.Resources = res.ByKey
	data.GeneralResources = res.General

	// 3. Mentorship
	raw, err = readDataFile(dir, MentorshipFile)
	if err != nil {
		return nil, err
	}
	var ment mentorshipDoc
	if err := json.Unmarshal(raw, &ment); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", MentorshipFile, err)
	}
	data.Platforms = ment.Platforms
	data.Mentors = ment.Recommendations
	data.GeneralMentors = ment.General

	return New(data), nil
}

// readDataFile returns the override file from dir if present, otherwise the
// embedded copy, after validating it against its schema
func readDataFile(dir, name string) ([]byte, error) {
	var raw []byte
	var err error

	if dir != "" {
		raw, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	if raw == nil {
		raw, err = dataFiles.ReadFile("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
	}

	if err := schemas.Validate(SchemaFor[name], raw); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return raw, nil
}
