package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
	"github.com/robert-at-pretension-io/reggen/internal/loader"
)

// resolveInputs returns args, or the configured input globs when no
// description was named on the command line.
func resolveInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := cfg.ResolveInputs(".")
	if err != nil {
		return nil, fmt.Errorf("resolving inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no description files given and none match the configured inputs")
	}
	return files, nil
}

// loadBlocks loads every description in order. alias, or the configured
// aliasImpl, is applied to blocks that declare none.
func loadBlocks(paths []string, alias string) ([]*ipblock.IpBlock, error) {
	l, err := loader.New()
	if err != nil {
		return nil, err
	}
	blocks, err := l.LoadAll(paths)
	if err != nil {
		return nil, err
	}

	if alias == "" {
		alias = cfg.AliasImpl
	}
	for i, b := range blocks {
		if b.AliasImpl == "" {
			b.AliasImpl = alias
		}
		log.WithFields(logrus.Fields{
			"path":       paths[i],
			"block":      b.Name,
			"interfaces": len(b.RegBlocks),
			"alias":      b.AliasImpl,
		}).Debug("loaded description")
	}
	return blocks, nil
}

// pick returns flag when set, otherwise fallback.
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
