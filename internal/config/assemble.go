package config

import "fmt"

// Assemble folds parsed occurrences into a Configuration.
//
// Repeatable flags append in occurrence order and fail on the first value
// past MaxValues. Module and harness keep the last value given. The
// directory is required; its existence is not checked.
func Assemble(p *Parsed) (*Configuration, error) {
	cfg := &Configuration{
		module:  DefaultModule,
		harness: DefaultHarness,
	}

	for _, occ := range p.Occurrences {
		var list *[]string
		switch occ.Flag {
		case FlagModule:
			cfg.module = occ.Value
			continue
		case FlagHarness:
			cfg.harness = occ.Value
			continue
		case FlagRequire:
			list = &cfg.requires
		case FlagPublisher:
			list = &cfg.publishers
		case FlagInclude:
			list = &cfg.include
		case FlagExclude:
			list = &cfg.exclude
		default:
			return nil, fmt.Errorf("unrecognized flag --%s", occ.Flag)
		}

		if len(*list) >= MaxValues {
			return nil, &TooManyValuesError{Flag: occ.Flag, Max: MaxValues}
		}
		*list = append(*list, occ.Value)
	}

	if !p.HasDir || p.Directory == "" {
		return nil, ErrMissingDirectory
	}
	cfg.directory = p.Directory

	if err := ValidateDocument(cfg.Document()); err != nil {
		return nil, err
	}

	return cfg, nil
}
