package transforms

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Client struct {
	Transforms []*TransformDefinition
}

func NewClient() *Client {
	client := &Client{}

	// Metrorex line colours
	for line, colour := range map[string]string{
		"M1": "#ffd100",
		"M2": "#0057a8",
		"M3": "#e4002b",
		"M4": "#00a651",
		"M5": "#f58220",
	} {
		client.Transforms = append(client.Transforms, &TransformDefinition{
			Type: "ctdf.Route",
			Match: map[string]string{
				"ShortName": line,
				"Type":      "subway",
			},
			Data: map[string]string{
				"Colour":     colour,
				"TextColour": "#ffffff",
			},
		})
	}

	return client
}

type transformsFile struct {
	Transforms []*TransformDefinition `yaml:"transforms" validate:"dive"`
}

// LoadFile appends the transforms of a YAML file, they take precedence over earlier ones
func (c *Client) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file transformsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	if err := validator.New().Struct(file); err != nil {
		return err
	}

	c.Transforms = append(c.Transforms, file.Transforms...)

	return nil
}

// Transform runs every matching transform over the record in order
func (c *Client) Transform(input any) {
	if c == nil {
		return
	}

	for _, transform := range c.Transforms {
		transform.Transform(input)
	}
}
