package cmd

import (
	"fmt"

	"github.com/adalundhe/collectc/core/collection"
	"github.com/adalundhe/collectc/core/config"
)

// compileInput is one resolved invocation of the engine: the variant
// descriptor, the config-file defaults for that family, and the raw flag
// values (empty string means "not given").
type compileInput struct {
	variant  collection.Variant
	defaults config.Variant
	meta     string
	dir      string
	out      string
	sortBy   string
	write    bool
	check    bool
}

func runCompile(in compileInput) error {
	if in.write == in.check {
		return fmt.Errorf("%w: exactly one of --write or --check is required", collection.ErrInvalidArgument)
	}

	opts, out := resolveOptions(in)
	artifact, err := collection.Compile(opts, in.variant)
	if err != nil {
		return err
	}

	if in.write {
		if err := collection.Write(out, artifact.Bytes); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d %s)\n", out, artifact.Count, in.variant.Name)
		return nil
	}

	if err := collection.Check(out, artifact.Bytes); err != nil {
		return err
	}
	fmt.Printf("%s is up to date\n", out)
	return nil
}

// resolveOptions applies precedence once, at the boundary: built-in default,
// then config file, then explicit flag. The engine never sees defaults.
func resolveOptions(in compileInput) (collection.Options, string) {
	opts := collection.Options{
		MetaPath:   pick(in.meta, in.defaults.Meta),
		RecordsDir: pick(in.dir, in.defaults.Dir),
		SortKey:    pick(in.sortBy, in.defaults.SortBy),
		Exclude:    in.defaults.Exclude,
	}
	return opts, pick(in.out, in.defaults.Out)
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
