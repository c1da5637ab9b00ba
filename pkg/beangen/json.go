package beangen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/utils"
)

// DecodeTargets reads one JSON target object or an array of them. Properties
// are an ordered array; needsGetter and needsSetter default to true and
// accessModifier defaults to public.
func DecodeTargets(r io.Reader) ([]GenerationTarget, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read targets")
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no targets: input is empty")
	}

	var targets []GenerationTarget
	if data[0] == '[' {
		if err := json.Unmarshal(data, &targets); err != nil {
			return nil, errors.WrapParseError("target array", err)
		}
	} else {
		var target GenerationTarget
		if err := json.Unmarshal(data, &target); err != nil {
			return nil, errors.WrapParseError("target", err)
		}
		targets = append(targets, target)
	}

	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// EncodeTargets writes targets as an indented JSON array
func EncodeTargets(w io.Writer, targets []GenerationTarget) error {
	if targets == nil {
		targets = []GenerationTarget{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(targets)
}

var (
	validateQualifiedName = utils.IsValidJavaName("qualifiedName")
	validateSuperclass    = utils.IsValidJavaName("superclassQualifiedName")
)

// ValidateTargets checks the names a target needs to render as legal Java
func ValidateTargets(targets []GenerationTarget) error {
	if len(targets) == 0 {
		return fmt.Errorf("no targets: input holds an empty array")
	}

	for i, t := range targets {
		if err := validateQualifiedName(t.QualifiedName); err != nil {
			return errors.Wrapf(errors.ValidationErrorCode, err, "invalid target %d", i)
		}
		if err := validateSuperclass(t.SuperclassQualifiedName); err != nil {
			return errors.Wrapf(errors.ValidationErrorCode, err, "invalid target %d (%s)", i, t.QualifiedName)
		}
		for _, p := range t.Properties.All() {
			if !utils.IsJavaIdentifier(p.Name) || p.Type == "" {
				return errors.Newf(errors.ValidationErrorCode, "invalid target %d (%s): property %q needs an identifier name and a type",
					i, t.QualifiedName, p.Name)
			}
		}
	}
	return nil
}
