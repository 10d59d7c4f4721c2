package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CityFeed maps a city display name onto a transit feed path
type CityFeed struct {
	Name string `yaml:"name" validate:"required"`
	Feed string `yaml:"feed" validate:"required"`
}

type CitiesFile struct {
	Cities []CityFeed `yaml:"cities" validate:"dive"`
}

// LoadCitiesFile reads and validates a YAML city table
func LoadCitiesFile(path string) ([]CityFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseCities(data)
}

func ParseCities(data []byte) ([]CityFeed, error) {
	var file CitiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	v := validator.New()
	if err := v.Struct(file); err != nil {
		return nil, err
	}

	return file.Cities, nil
}
