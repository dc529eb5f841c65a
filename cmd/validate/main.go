package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/initiative-tracker/pkg/bestiary"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <monster.yaml|pc.json> [...]\n", os.Args[0])
		os.Exit(1)
	}

	validator := &DataValidator{}
	failed := false
	for _, filename := range os.Args[1:] {
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", filename)
	}

	if failed {
		os.Exit(1)
	}
}

type DataValidator struct{}

func (v *DataValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !isValidDataFilename(nameWithoutExt) {
		return fmt.Errorf("data filename '%s' must be lowercase snake_case (e.g., dire_wolf.yaml, not Dire-Wolf.yaml)", baseName)
	}

	switch ext {
	case ".yaml", ".yml":
		return v.validateMonster(filename, nameWithoutExt)
	case ".json":
		return v.validatePC(filename, nameWithoutExt)
	default:
		return fmt.Errorf("unsupported extension %q: monsters are .yaml, PCs are .json", ext)
	}
}

func (v *DataValidator) validateMonster(filename, id string) error {
	monster, err := bestiary.Load(filename)
	if err != nil {
		return err
	}
	if err := monster.Validate(); err != nil {
		return err
	}
	// The API serves monsters under their filename, so the declared id
	// has to agree with it.
	if monster.ID != id {
		return fmt.Errorf("monster id %q does not match filename %q", monster.ID, id)
	}
	return nil
}

func (v *DataValidator) validatePC(filename, id string) error {
	spec, err := party.Load(filename)
	if err != nil {
		return err
	}
	if _, err := party.NewMember(spec); err != nil {
		return err
	}
	if spec.ID != id {
		return fmt.Errorf("pc id %q does not match filename %q", spec.ID, id)
	}
	return nil
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidDataFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}
