package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
	"gopkg.in/yaml.v3"
)

// A YAML description carries the same content as the text format:
//
//	alphabet: ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	slots: 4
//	pawls: 3
//	rotors:
//	  - name: I
//	    kind: moving
//	    notches: Q
//	    wiring: "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ)"

func parseYAML(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: configuration is empty", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if err := validation.Struct(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", enigma.ErrConfigurationInvalid, err)
	}
	return &d, nil
}

// WriteYAML writes d as a YAML document.
func (d *Description) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}
