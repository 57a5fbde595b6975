package herdfile

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

type yamlHerd struct {
	Herd []yamlYak `yaml:"herd"`
}

type yamlYak struct {
	Name string   `yaml:"name"`
	Age  *float64 `yaml:"age"`
}

func decodeYAML(r io.Reader) ([]domain.Entry, error) {
	var doc yamlHerd
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Entry{}, nil
		}
		return nil, parseError("yaml: %v", err)
	}
	entries := make([]domain.Entry, 0, len(doc.Herd))
	for i, yak := range doc.Herd {
		if yak.Name == "" {
			return nil, parseError("herd entry %d has no name", i)
		}
		if yak.Age == nil {
			return nil, parseError("yak %q has no age", yak.Name)
		}
		entries = append(entries, domain.Entry{Name: yak.Name, AgeYears: *yak.Age})
	}
	return entries, nil
}
